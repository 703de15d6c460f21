package fixedpool

import "github.com/hupe1980/fixedpool/internal/slab"

// Move transfers the receiver's block chain, cursors and free list into a
// new Pool and leaves the receiver in the freshly-constructed empty state:
// no blocks, no free list, next Allocate maps a fresh block. The returned
// pool is the single owner of the transferred blocks; closing the receiver
// afterwards releases nothing.
func (p *Pool[T]) Move() *Pool[T] {
	return &Pool[T]{
		slab:          p.slab.Detach(),
		blockSize:     p.blockSize,
		logger:        p.logger,
		metrics:       p.metrics,
		allowPointers: p.allowPointers,
	}
}

// Swap exchanges the two pools' allocator state: block-chain ownership,
// cursors, free lists and block size configuration. This is the operation
// containers use when swapping two containers should swap their allocators.
// Logger and metrics stay with their pool.
func (p *Pool[T]) Swap(other *Pool[T]) {
	p.slab.Swap(other.slab)
	p.blockSize, other.blockSize = other.blockSize, p.blockSize
	p.closed, other.closed = other.closed, p.closed
}

// Clone returns a fresh, empty Pool with the receiver's configuration.
// No blocks, slots or free-list entries are shared or copied: allocator
// duplication must be cheap and must never share mutable allocator state.
func (p *Pool[T]) Clone() *Pool[T] {
	// The configuration was validated when the receiver was constructed.
	s, _ := slab.New(p.slab.SlotSize(), p.slab.SlotAlign(), p.blockSize)
	return &Pool[T]{
		slab:          s,
		blockSize:     p.blockSize,
		logger:        p.logger,
		metrics:       p.metrics,
		allowPointers: p.allowPointers,
	}
}

// PropagateOnContainerCopy reports whether a container copying itself
// should copy this allocator along. Always false: copies get an
// independent, empty pool via Clone instead.
func (p *Pool[T]) PropagateOnContainerCopy() bool { return false }

// PropagateOnContainerMove reports whether a container being moved should
// take this allocator along. Always true: block ownership follows the
// container's elements.
func (p *Pool[T]) PropagateOnContainerMove() bool { return true }

// PropagateOnContainerSwap reports whether swapping two containers should
// swap their allocators. Always true; see Swap.
func (p *Pool[T]) PropagateOnContainerSwap() bool { return true }

package fixedpool

// Allocator is the contract a generic container consumes from this package.
// Pool implements it; containers written against Allocator can be handed
// any allocation strategy.
//
// The propagation hints tell a container what to do with its allocator on
// container copy, move and swap: a Pool is never copied along (copies get a
// fresh pool), but moves and swaps carry it.
type Allocator[T any] interface {
	// Allocate returns one uninitialized, correctly aligned slot.
	Allocate() (*T, error)

	// Deallocate releases a slot previously returned by Allocate.
	Deallocate(*T)

	// NewElement allocates a slot and constructs the value in it.
	NewElement(T) (*T, error)

	// DeleteElement destroys the value and releases its slot.
	DeleteElement(*T)

	// MaxCapacity returns the theoretical maximum number of slots.
	MaxCapacity() uint64

	PropagateOnContainerCopy() bool
	PropagateOnContainerMove() bool
	PropagateOnContainerSwap() bool
}

var _ Allocator[int] = (*Pool[int])(nil)

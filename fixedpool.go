package fixedpool

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/hupe1980/fixedpool/internal/slab"
)

// Pool is a fixed-size-object memory pool for values of type T.
//
// A Pool owns a chain of fixed-size blocks subdivided into aligned slots,
// each large enough for one T or one free-list link. Freed slots are reused
// LIFO before fresh memory is touched; a new block is mapped only when both
// the free list and the current block are exhausted.
//
// A Pool must not be copied by value; use Clone for an independent empty
// pool and Move to transfer ownership. It is not safe for concurrent use.
type Pool[T any] struct {
	noCopy noCopy

	slab      *slab.Slab
	blockSize int

	logger        *Logger
	metrics       MetricsCollector
	allowPointers bool
	closed        bool
}

// Stats is a point-in-time snapshot of a pool's state.
type Stats struct {
	Blocks        uint64 // blocks currently mapped
	SlotsPerBlock uint64 // usable slots per block
	Live          uint64 // slots handed out and not yet deallocated
	FreeSlots     uint64 // slots waiting on the free list
	Grows         uint64 // cumulative block growths
}

// New creates an empty Pool for T. No memory is mapped until the first
// allocation.
//
// Errors: BlockSizeError if the configured block size cannot hold two slots
// of T; ErrPointerType if T contains Go heap pointers and AllowPointers was
// not set.
func New[T any](opts ...Option) (*Pool[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var zero T
	slotSize, slotAlign := slab.SlotLayout(int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero)))

	if o.blockSize < 2*slotSize {
		return nil, &BlockSizeError{BlockSize: o.blockSize, SlotSize: slotSize}
	}

	if !o.allowPointers {
		if t := reflect.TypeOf((*T)(nil)).Elem(); typeHasPointers(t) {
			return nil, fmt.Errorf("%w: %s", ErrPointerType, t)
		}
	}

	s, err := slab.New(slotSize, slotAlign, o.blockSize)
	if err != nil {
		return nil, err
	}

	return &Pool[T]{
		slab:          s,
		blockSize:     o.blockSize,
		logger:        o.logger.WithBlockSize(o.blockSize),
		metrics:       o.metricsCollector,
		allowPointers: o.allowPointers,
	}, nil
}

// Allocate returns a pointer to one uninitialized, correctly aligned slot.
// No object is constructed there; a reused slot still carries stale bytes.
//
// Order: free list first, then the current block's bump cursor, then block
// growth. On growth failure ErrOutOfMemory is returned and the pool is left
// unchanged.
func (p *Pool[T]) Allocate() (*T, error) {
	if p.closed {
		return nil, ErrClosed
	}

	before := p.slab.Stats()

	ptr, err := p.slab.Alloc()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrOutOfMemory, err)
		p.metrics.RecordAllocate(false, err)
		return nil, err
	}

	p.metrics.RecordAllocate(before.FreeSlots > 0, nil)

	if after := p.slab.Stats(); after.Grows > before.Grows {
		p.metrics.RecordGrow(p.blockSize)
		p.logger.LogGrow(after.Blocks, p.blockSize)
	}

	return (*T)(ptr), nil
}

// Deallocate returns the slot at ptr to the pool's free list. The memory is
// reused by a later Allocate; it is never handed back to the operating
// system before Close.
//
// ptr must have been returned by Allocate on this pool and not yet
// deallocated. Passing any other address, or the same address twice, is
// undefined behavior; no check is performed. Deallocate(nil) is a no-op,
// as is deallocating into a closed pool.
func (p *Pool[T]) Deallocate(ptr *T) {
	if ptr == nil || p.closed {
		return
	}
	p.slab.Free(unsafe.Pointer(ptr))
	p.metrics.RecordDeallocate()
}

// NewElement allocates a slot and constructs v in it.
// This is the primary end-to-end entry point for most callers.
func (p *Pool[T]) NewElement(v T) (*T, error) {
	ptr, err := p.Allocate()
	if err != nil {
		return nil, err
	}
	*ptr = v
	return ptr, nil
}

// DeleteElement destroys the element at ptr and returns its slot to the
// pool. DeleteElement(nil) is a no-op.
func (p *Pool[T]) DeleteElement(ptr *T) {
	if ptr == nil {
		return
	}
	p.Destroy(ptr)
	p.Deallocate(ptr)
}

// MaxCapacity returns the theoretical maximum number of slots this pool
// could ever allocate, bounded by counter wraparound. Informational only;
// it is never enforced — allocation fails only when the operating system
// refuses a new block.
func (p *Pool[T]) MaxCapacity() uint64 {
	return p.slab.MaxCapacity()
}

// BlockSize returns the configured block size in bytes.
func (p *Pool[T]) BlockSize() int {
	return p.blockSize
}

// SlotSize returns the stride between slots in bytes:
// max(sizeof(T), pointer size), rounded up to the slot alignment.
func (p *Pool[T]) SlotSize() int {
	return p.slab.SlotSize()
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() Stats {
	st := p.slab.Stats()
	return Stats{
		Blocks:        st.Blocks,
		SlotsPerBlock: st.SlotsPerBlock,
		Live:          st.Live,
		FreeSlots:     st.FreeSlots,
		Grows:         st.Grows,
	}
}

// Close unmaps every block by walking the block chain and marks the pool
// closed. It is idempotent.
//
// Close never runs object teardown: the pool does not track which slots
// hold constructed objects, so callers must DeleteElement every live
// element first or accept that their cleanup is skipped.
func (p *Pool[T]) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	blocks := p.slab.Stats().Blocks
	err := p.slab.Release()
	p.logger.LogClose(blocks, err)

	return err
}

// typeHasPointers reports whether values of t contain pointers the garbage
// collector would need to trace.
func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Ptr, UnsafePointer, Slice, String, Map, Chan, Func, Interface
		return true
	}
}

// noCopy triggers go vet's copylocks check when a Pool is copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

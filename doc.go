// Package fixedpool provides a fixed-size-object memory pool for Go.
//
// A Pool services repeated allocation and release of single instances of one
// object type without going back to the system allocator on every call.
// Memory is acquired in fixed-size blocks (anonymous mappings outside the Go
// heap), carved into aligned slots, and recycled through a LIFO free list.
// It is intended as a drop-in allocator for container libraries that
// delegate memory management to a pluggable allocator component.
//
// # Quick Start
//
//	pool, err := fixedpool.New[Vertex]()
//	if err != nil { ... }
//	defer pool.Close()
//
//	v, err := pool.NewElement(Vertex{X: 1, Y: 2})
//	if err != nil { ... }
//
//	// ... use v ...
//
//	pool.DeleteElement(v)
//
// Lower-level control is available via Allocate/Deallocate (raw slots,
// no construction) and Construct/Destroy (in-place lifecycle).
//
// # Allocation Order
//
// Allocate serves the most recently freed slot first, then fresh slots from
// the current block, and maps a new block only when both are exhausted.
// Every operation is O(1) except block growth, which costs one mapping call.
//
// # Caller Obligations
//
// The pool performs no checking on the hot path, matching its zero-overhead
// goal:
//
//   - A Pool is single-threaded. Sharing one across goroutines requires
//     external serialization of every operation.
//   - Deallocate accepts only addresses previously returned by Allocate on
//     the same Pool and not yet deallocated. Anything else is undefined
//     behavior.
//   - Close releases raw blocks only; it never runs object teardown. Callers
//     must DeleteElement every live object before closing the pool.
//
// # Heap Pointers
//
// Blocks are invisible to the garbage collector, so an element type holding
// Go heap pointers could lose its referents. New rejects such types unless
// AllowPointers is set; see the option's documentation for when that is safe.
package fixedpool

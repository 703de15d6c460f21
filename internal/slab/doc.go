// Package slab implements the untyped engine behind fixedpool: a singly
// linked chain of fixed-size off-heap blocks carved into aligned slots, with
// a LIFO free list threaded through released slots.
//
// # Allocation order
//
// Alloc serves the free-list head first, then the bump cursor of the current
// block, and grows a new block only when both are exhausted. This favors
// reuse over fresh memory to keep the working set small and cache-warm.
//
// # Safety
//
// This package is the unsafe core of the allocator. A released slot is
// reinterpreted as a single pointer-sized link; a live slot is opaque bytes
// handed to the caller. The two reinterpretation sites (Alloc pop, Free push)
// are the only places slot memory is touched. Blocks are anonymous mappings
// the garbage collector never scans, so callers must not store Go heap
// pointers in slots unless they keep the referents alive elsewhere.
//
// # Concurrency
//
// None. All cursors are read and mutated without synchronization; callers
// serialize access.
package slab

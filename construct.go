package fixedpool

import "unsafe"

// Construct builds v in place at an already-allocated slot, without
// touching the allocator. Together with Destroy it gives containers
// explicit control over object lifetime separate from slot lifetime.
func (p *Pool[T]) Construct(ptr *T, v T) {
	*ptr = v
}

// Destroy clears the element at ptr in place without releasing its slot,
// dropping any references the value held. The slot stays live and can be
// reconstructed with Construct.
func (p *Pool[T]) Destroy(ptr *T) {
	var zero T
	*ptr = zero
}

// PlaceAt builds a value of type U at a slot address obtained from a pool.
//
// Containers occasionally need to build a helper structure rather than the
// pool's element type at pooled memory. The caller must guarantee the slot
// fits U: unsafe.Sizeof(U) no larger than the pool's SlotSize and U's
// alignment no stricter than the slot alignment. Nothing is checked.
func PlaceAt[U any](addr unsafe.Pointer, v U) *U {
	ptr := (*U)(addr)
	*ptr = v
	return ptr
}

// ClearAt zeroes the U previously placed at ptr without releasing the slot.
func ClearAt[U any](ptr *U) {
	var zero U
	*ptr = zero
}

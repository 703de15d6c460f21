// Package mmap provides anonymous off-heap memory mappings.
//
// # Overview
//
// Pool blocks live outside the Go heap so the garbage collector never scans
// slot memory and block addresses stay stable for the lifetime of the pool.
// MapAnon creates read-write anonymous mappings for that purpose; memory is
// returned to the operating system only when the mapping is closed.
//
// # Usage
//
//	m, err := mmap.MapAnon(4096)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE
//   - Windows: VirtualAlloc with MEM_RESERVE|MEM_COMMIT
//
// # Safety
//
// Close is idempotent. Callers must not touch Bytes() after Close returns;
// the pages are gone and access will fault.
package mmap

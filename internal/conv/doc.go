// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow or
// underflow when converting between signed/unsigned integer types.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv

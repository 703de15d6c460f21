package fixedpool

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when allocating from a closed pool.
	ErrClosed = errors.New("fixedpool: pool is closed")

	// ErrOutOfMemory is returned when the operating system refuses a block
	// growth request. The pool is left unchanged; the mapping error is
	// available via errors.Unwrap.
	ErrOutOfMemory = errors.New("fixedpool: out of memory")

	// ErrPointerType is returned by New when the element type contains Go
	// heap pointers and AllowPointers was not set.
	ErrPointerType = errors.New("fixedpool: element type contains heap pointers")
)

// BlockSizeError indicates a configured block size too small to hold at
// least two slots of the element type.
type BlockSizeError struct {
	BlockSize int
	SlotSize  int
}

func (e *BlockSizeError) Error() string {
	return fmt.Sprintf("fixedpool: block size %d too small: need at least %d (two slots of %d bytes)",
		e.BlockSize, 2*e.SlotSize, e.SlotSize)
}

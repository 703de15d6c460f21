package slab

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/hupe1980/fixedpool/internal/conv"
	"github.com/hupe1980/fixedpool/internal/mmap"
)

const (
	ptrSize  = int(unsafe.Sizeof(uintptr(0)))
	ptrAlign = int(unsafe.Alignof(uintptr(0)))

	// headerSize reserves one machine word at the head of every block,
	// the chain-link word of the classic pool layout. The Go-side block
	// struct owns the actual prev pointer; the word stays reserved so
	// slots-per-block accounting is identical across platforms.
	headerSize = ptrSize
)

// SlotLayout returns the size and alignment of a slot able to hold either
// one object of the given size and alignment or one free-list link.
// The size is rounded up to a multiple of the alignment so that slots laid
// out back to back all stay aligned.
func SlotLayout(objSize, objAlign int) (size, align int) {
	align = objAlign
	if align < ptrAlign {
		align = ptrAlign
	}
	size = objSize
	if size < ptrSize {
		size = ptrSize
	}
	if rem := size % align; rem != 0 {
		size += align - rem
	}
	return size, align
}

// Stats is a point-in-time snapshot of a slab's state.
type Stats struct {
	Blocks        uint64 // blocks currently mapped
	SlotsPerBlock uint64 // usable slots per block
	Live          uint64 // slots handed out and not yet freed
	FreeSlots     uint64 // slots currently on the free list
	Grows         uint64 // cumulative block growths
}

// block is one fixed-size anonymous mapping. Older blocks are reachable only
// through prev and are touched again only at Release.
type block struct {
	mapping *mmap.Mapping
	prev    *block
}

// Slab hands out fixed-size aligned slots from a chain of off-heap blocks.
// The zero block chain is lazy: nothing is mapped until the first Alloc.
// Not safe for concurrent use.
type Slab struct {
	slotSize  int
	slotAlign int
	blockSize int

	current *block         // most recently mapped block, owns the prev chain
	data    []byte         // raw bytes of the current block
	next    int            // offset of the next never-used slot in data
	limit   int            // offset one past the last slot that fully fits
	free    unsafe.Pointer // head of the LIFO free list, nil when empty

	blocks    uint64
	live      uint64
	freeSlots uint64
	grows     uint64
}

// New returns an empty slab for slots of the given size and alignment.
// slotSize and slotAlign must come from SlotLayout. blockSize must hold at
// least two slots.
func New(slotSize, slotAlign, blockSize int) (*Slab, error) {
	if blockSize < 2*slotSize {
		return nil, fmt.Errorf("slab: block size %d cannot hold two slots of %d bytes", blockSize, slotSize)
	}
	return &Slab{
		slotSize:  slotSize,
		slotAlign: slotAlign,
		blockSize: blockSize,
	}, nil
}

// SlotSize returns the stride between slots in bytes.
func (s *Slab) SlotSize() int { return s.slotSize }

// SlotAlign returns the alignment of every slot address.
func (s *Slab) SlotAlign() int { return s.slotAlign }

// BlockSize returns the size of one block in bytes.
func (s *Slab) BlockSize() int { return s.blockSize }

// Alloc returns one slot-sized, aligned memory region. The region is not
// cleared; a reused slot still carries its stale free-list link.
func (s *Slab) Alloc() (unsafe.Pointer, error) {
	if s.free != nil {
		p := s.free
		s.free = *(*unsafe.Pointer)(p)
		s.freeSlots--
		s.live++
		return p, nil
	}

	if s.current == nil || s.next >= s.limit {
		if err := s.grow(); err != nil {
			return nil, err
		}
	}

	p := unsafe.Pointer(&s.data[s.next])
	s.next += s.slotSize
	s.live++
	return p, nil
}

// Free pushes the slot at p onto the free list. p must have been returned by
// Alloc on this slab and not yet freed; neither is checked.
func (s *Slab) Free(p unsafe.Pointer) {
	*(*unsafe.Pointer)(p) = s.free
	s.free = p
	s.live--
	s.freeSlots++
}

// grow maps one new block and links it as the current block. On failure the
// slab is left unchanged.
func (s *Slab) grow() error {
	m, err := mmap.MapAnon(s.blockSize)
	if err != nil {
		return fmt.Errorf("slab: map block of %d bytes: %w", s.blockSize, err)
	}

	data := m.Bytes()
	body := uintptr(unsafe.Pointer(&data[0])) + uintptr(headerSize)
	start := headerSize + int(padOffset(body, uintptr(s.slotAlign)))

	s.current = &block{mapping: m, prev: s.current}
	s.data = data
	s.next = start
	s.limit = start + (s.blockSize-start)/s.slotSize*s.slotSize
	s.blocks++
	s.grows++

	return nil
}

// padOffset returns the smallest non-negative offset such that addr+offset
// is a multiple of align.
func padOffset(addr, align uintptr) uintptr {
	return (align - addr%align) % align
}

// SlotsPerBlock returns the number of usable slots in one block.
func (s *Slab) SlotsPerBlock() uint64 {
	return uint64((s.blockSize - headerSize) / s.slotSize)
}

// MaxCapacity returns the theoretical maximum number of slots the slab could
// ever hand out, bounded by counter wraparound. Informational only; Alloc
// fails only when the system refuses a new mapping.
func (s *Slab) MaxCapacity() uint64 {
	bs, _ := conv.IntToUint64(s.blockSize)
	maxBlocks := uint64(math.MaxUint64) / bs
	return maxBlocks * s.SlotsPerBlock()
}

// Stats returns a snapshot of the slab's counters.
func (s *Slab) Stats() Stats {
	return Stats{
		Blocks:        s.blocks,
		SlotsPerBlock: s.SlotsPerBlock(),
		Live:          s.live,
		FreeSlots:     s.freeSlots,
		Grows:         s.grows,
	}
}

// Detach moves the block chain, cursors and counters into a new slab and
// leaves the receiver in the freshly-constructed empty state, so a later
// Release on the receiver touches nothing.
func (s *Slab) Detach() *Slab {
	d := &Slab{
		slotSize:  s.slotSize,
		slotAlign: s.slotAlign,
		blockSize: s.blockSize,
		current:   s.current,
		data:      s.data,
		next:      s.next,
		limit:     s.limit,
		free:      s.free,
		blocks:    s.blocks,
		live:      s.live,
		freeSlots: s.freeSlots,
		grows:     s.grows,
	}
	s.reset()
	return d
}

// Swap exchanges the full state of two slabs, block-chain ownership included.
func (s *Slab) Swap(o *Slab) {
	*s, *o = *o, *s
}

func (s *Slab) reset() {
	s.current = nil
	s.data = nil
	s.next = 0
	s.limit = 0
	s.free = nil
	s.blocks = 0
	s.live = 0
	s.freeSlots = 0
	s.grows = 0
}

// Release unmaps every block by walking the chain of back-references and
// resets the slab to its freshly-constructed state. Slot contents are not
// inspected; objects still constructed in slots are abandoned.
func (s *Slab) Release() error {
	var firstErr error
	for b := s.current; b != nil; b = b.prev {
		if err := b.mapping.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.reset()
	return firstErr
}

package slab

import (
	"testing"
	"unsafe"
)

func TestSlotLayout(t *testing.T) {
	t.Run("small object rounds up to link size", func(t *testing.T) {
		size, align := SlotLayout(1, 1)
		if size != ptrSize {
			t.Errorf("expected size=%d, got %d", ptrSize, size)
		}
		if align != ptrAlign {
			t.Errorf("expected align=%d, got %d", ptrAlign, align)
		}
	})

	t.Run("size rounds up to alignment multiple", func(t *testing.T) {
		size, align := SlotLayout(17, 8)
		if size != 24 {
			t.Errorf("expected size=24, got %d", size)
		}
		if align != 8 {
			t.Errorf("expected align=8, got %d", align)
		}
	})

	t.Run("stride preserves alignment", func(t *testing.T) {
		size, align := SlotLayout(12, 4)
		if size%align != 0 {
			t.Errorf("size %d not a multiple of align %d", size, align)
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("lazy", func(t *testing.T) {
		s, err := New(layoutOf(t, 16, 8, 4096))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.Stats().Blocks; got != 0 {
			t.Errorf("expected no blocks before first Alloc, got %d", got)
		}
	})

	t.Run("block too small", func(t *testing.T) {
		size, align := SlotLayout(128, 8)
		if _, err := New(size, align, 2*size-1); err == nil {
			t.Error("expected error for block smaller than two slots")
		}
	})
}

// layoutOf is a test helper expanding SlotLayout into New's arguments.
func layoutOf(t *testing.T, objSize, objAlign, blockSize int) (int, int, int) {
	t.Helper()
	size, align := SlotLayout(objSize, objAlign)
	return size, align, blockSize
}

func TestSlab_Alloc(t *testing.T) {
	t.Run("alignment", func(t *testing.T) {
		s, err := New(layoutOf(t, 24, 8, 4096))
		if err != nil {
			t.Fatal(err)
		}
		defer s.Release()

		for i := 0; i < 1000; i++ {
			p, err := s.Alloc()
			if err != nil {
				t.Fatalf("alloc %d failed: %v", i, err)
			}
			if uintptr(p)%uintptr(s.SlotAlign()) != 0 {
				t.Fatalf("alloc %d: address %x not aligned to %d", i, uintptr(p), s.SlotAlign())
			}
		}
	})

	t.Run("no overlap", func(t *testing.T) {
		s, err := New(layoutOf(t, 16, 8, 512))
		if err != nil {
			t.Fatal(err)
		}
		defer s.Release()

		seen := make(map[uintptr]bool)
		for i := 0; i < 300; i++ {
			p, err := s.Alloc()
			if err != nil {
				t.Fatal(err)
			}
			addr := uintptr(p)
			for prev := range seen {
				d := addr - prev
				if prev > addr {
					d = prev - addr
				}
				if d < uintptr(s.SlotSize()) {
					t.Fatalf("slots %x and %x overlap (distance %d < slot size %d)", prev, addr, d, s.SlotSize())
				}
			}
			seen[addr] = true
		}
	})

	t.Run("LIFO reuse", func(t *testing.T) {
		s, err := New(layoutOf(t, 16, 8, 4096))
		if err != nil {
			t.Fatal(err)
		}
		defer s.Release()

		p1, _ := s.Alloc()
		p2, _ := s.Alloc()
		s.Free(p1)
		s.Free(p2)

		// Most recently freed comes back first
		r1, _ := s.Alloc()
		r2, _ := s.Alloc()
		if r1 != p2 {
			t.Errorf("expected first realloc to return %p, got %p", p2, r1)
		}
		if r2 != p1 {
			t.Errorf("expected second realloc to return %p, got %p", p1, r2)
		}
	})

	t.Run("free list served before bump cursor", func(t *testing.T) {
		s, err := New(layoutOf(t, 8, 8, 4096))
		if err != nil {
			t.Fatal(err)
		}
		defer s.Release()

		p, _ := s.Alloc()
		before := s.Stats()
		s.Free(p)
		r, _ := s.Alloc()
		if r != p {
			t.Errorf("expected freed slot %p to be reused, got %p", p, r)
		}
		if got := s.Stats().Grows; got != before.Grows {
			t.Errorf("reuse must not grow: grows went %d -> %d", before.Grows, got)
		}
	})
}

func TestSlab_Growth(t *testing.T) {
	// Block of 64 bytes with 8-byte slots: one header word, then 7 slots.
	s, err := New(layoutOf(t, 8, 8, 64))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()

	k := int(s.SlotsPerBlock())
	if k != 7 {
		t.Fatalf("expected 7 slots per block, got %d", k)
	}

	seen := make(map[uintptr]bool)
	for i := 0; i < k; i++ {
		p, err := s.Alloc()
		if err != nil {
			t.Fatal(err)
		}
		seen[uintptr(p)] = true
	}
	if got := s.Stats().Blocks; got != 1 {
		t.Fatalf("expected 1 block after %d allocs, got %d", k, got)
	}

	// The (k+1)-th allocation must trigger growth and still return a fresh,
	// aligned address.
	p, err := s.Alloc()
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Stats().Blocks; got != 2 {
		t.Errorf("expected 2 blocks after %d allocs, got %d", k+1, got)
	}
	if seen[uintptr(p)] {
		t.Errorf("address %x already handed out", uintptr(p))
	}
	if uintptr(p)%uintptr(s.SlotAlign()) != 0 {
		t.Errorf("address %x not aligned", uintptr(p))
	}
}

func TestSlab_FreeListLink(t *testing.T) {
	// A freed slot holds the previous free head in its first word.
	s, err := New(layoutOf(t, 16, 8, 4096))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()

	p1, _ := s.Alloc()
	p2, _ := s.Alloc()
	s.Free(p1)
	s.Free(p2)

	if link := *(*unsafe.Pointer)(p2); link != p1 {
		t.Errorf("expected %p to link to %p, got %p", p2, p1, link)
	}
	if link := *(*unsafe.Pointer)(p1); link != nil {
		t.Errorf("expected %p to terminate the list, got %p", p1, link)
	}
}

func TestSlab_Detach(t *testing.T) {
	s, err := New(layoutOf(t, 16, 8, 256))
	if err != nil {
		t.Fatal(err)
	}

	var ptrs []unsafe.Pointer
	for i := 0; i < 40; i++ {
		p, err := s.Alloc()
		if err != nil {
			t.Fatal(err)
		}
		ptrs = append(ptrs, p)
	}
	s.Free(ptrs[0])
	before := s.Stats()

	d := s.Detach()
	defer d.Release()

	if got := d.Stats(); got != before {
		t.Errorf("detached slab stats = %+v, want %+v", got, before)
	}

	// Receiver behaves as freshly constructed: empty, next Alloc grows.
	if got := s.Stats(); got.Blocks != 0 || got.Live != 0 || got.FreeSlots != 0 {
		t.Errorf("source not reset: %+v", got)
	}
	p, err := s.Alloc()
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Stats().Grows; got != 1 {
		t.Errorf("expected source to grow a fresh block, grows=%d", got)
	}
	s.Free(p)
	if err := s.Release(); err != nil {
		t.Fatal(err)
	}
}

func TestSlab_Swap(t *testing.T) {
	a, err := New(layoutOf(t, 8, 8, 4096))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(layoutOf(t, 8, 8, 8192))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	defer b.Release()

	if _, err := a.Alloc(); err != nil {
		t.Fatal(err)
	}

	a.Swap(b)

	if got := a.Stats().Live; got != 0 {
		t.Errorf("expected a to be empty after swap, live=%d", got)
	}
	if got := b.Stats().Live; got != 1 {
		t.Errorf("expected b to hold the allocation, live=%d", got)
	}
	if a.BlockSize() != 8192 || b.BlockSize() != 4096 {
		t.Errorf("block sizes not exchanged: a=%d b=%d", a.BlockSize(), b.BlockSize())
	}
}

func TestSlab_Release(t *testing.T) {
	t.Run("resets to fresh state", func(t *testing.T) {
		s, err := New(layoutOf(t, 8, 8, 64))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 20; i++ {
			if _, err := s.Alloc(); err != nil {
				t.Fatal(err)
			}
		}
		if err := s.Release(); err != nil {
			t.Fatal(err)
		}
		if got := s.Stats(); got.Blocks != 0 || got.Live != 0 {
			t.Errorf("not reset: %+v", got)
		}
	})

	t.Run("empty slab", func(t *testing.T) {
		s, err := New(layoutOf(t, 8, 8, 64))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Release(); err != nil {
			t.Fatal(err)
		}
	})
}

func TestSlab_MaxCapacity(t *testing.T) {
	s, err := New(layoutOf(t, 8, 8, 4096))
	if err != nil {
		t.Fatal(err)
	}

	// (2^64-1)/blockSize blocks, each holding (blockSize-header)/slotSize slots.
	maxBlocks := ^uint64(0) / 4096
	want := maxBlocks * uint64((4096-headerSize)/8)
	if got := s.MaxCapacity(); got != want {
		t.Errorf("MaxCapacity() = %d, want %d", got, want)
	}
}

func TestSlab_BoundedGrowth(t *testing.T) {
	// Paired alloc/free cycles must not grow past the first block.
	s, err := New(layoutOf(t, 16, 8, 4096))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()

	for i := 0; i < 100000; i++ {
		p, err := s.Alloc()
		if err != nil {
			t.Fatal(err)
		}
		s.Free(p)
	}
	if got := s.Stats().Blocks; got != 1 {
		t.Errorf("expected 1 block after paired cycles, got %d", got)
	}
}

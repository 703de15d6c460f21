package conv

import (
	"math"
	"testing"
)

func TestIntToUint64(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := IntToUint64(4096)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 4096 {
			t.Errorf("expected 4096, got %d", v)
		}
	})

	t.Run("negative", func(t *testing.T) {
		if _, err := IntToUint64(-1); err == nil {
			t.Error("expected error for negative value")
		}
	})
}

func TestUint64ToInt(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := Uint64ToInt(42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}
	})

	t.Run("too large", func(t *testing.T) {
		if _, err := Uint64ToInt(math.MaxUint64); err == nil {
			t.Error("expected error for out-of-range value")
		}
	})
}

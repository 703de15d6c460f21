package fixedpool

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting allocator metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Collectors run inline on the allocation path; implementations must be
// cheap and must not block.
type MetricsCollector interface {
	// RecordAllocate is called after each allocation attempt. reused is
	// true when the slot came from the free list, err is nil on success.
	RecordAllocate(reused bool, err error)

	// RecordDeallocate is called after each deallocation.
	RecordDeallocate()

	// RecordGrow is called after a new block of blockSize bytes was mapped.
	RecordGrow(blockSize int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocate(bool, error) {}
func (NoopMetricsCollector) RecordDeallocate()          {}
func (NoopMetricsCollector) RecordGrow(int)             {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AllocCount   atomic.Int64
	AllocErrors  atomic.Int64
	ReuseCount   atomic.Int64
	DeallocCount atomic.Int64
	GrowCount    atomic.Int64
	GrowBytes    atomic.Int64
}

func (b *BasicMetricsCollector) RecordAllocate(reused bool, err error) {
	b.AllocCount.Add(1)
	if err != nil {
		b.AllocErrors.Add(1)
		return
	}
	if reused {
		b.ReuseCount.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordDeallocate() {
	b.DeallocCount.Add(1)
}

func (b *BasicMetricsCollector) RecordGrow(blockSize int) {
	b.GrowCount.Add(1)
	b.GrowBytes.Add(int64(blockSize))
}

// MetricsSnapshot is a point-in-time copy of collected metrics.
type MetricsSnapshot struct {
	AllocCount   int64
	AllocErrors  int64
	ReuseCount   int64
	DeallocCount int64
	GrowCount    int64
	GrowBytes    int64
}

// Snapshot returns the current metric values.
func (b *BasicMetricsCollector) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		AllocCount:   b.AllocCount.Load(),
		AllocErrors:  b.AllocErrors.Load(),
		ReuseCount:   b.ReuseCount.Load(),
		DeallocCount: b.DeallocCount.Load(),
		GrowCount:    b.GrowCount.Load(),
		GrowBytes:    b.GrowBytes.Load(),
	}
}

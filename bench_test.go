package fixedpool

import (
	"runtime"
	"testing"
)

// BenchmarkPoolNewDelete measures the steady-state path: every NewElement is
// served from the free list filled by the previous DeleteElement.
func BenchmarkPoolNewDelete(b *testing.B) {
	pool, err := New[vertex]()
	if err != nil {
		b.Fatal(err)
	}
	defer pool.Close()

	runtime.GC()
	var m1 runtime.MemStats
	runtime.ReadMemStats(&m1)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := pool.NewElement(vertex{X: 1})
		if err != nil {
			b.Fatal(err)
		}
		pool.DeleteElement(v)
	}

	b.StopTimer()
	runtime.GC()
	var m2 runtime.MemStats
	runtime.ReadMemStats(&m2)
	b.ReportMetric(float64(m2.NumGC-m1.NumGC), "gcs")
}

// BenchmarkHeapNewDelete is the fair comparison: same allocation pattern,
// but GC-managed.
func BenchmarkHeapNewDelete(b *testing.B) {
	runtime.GC()
	var m1 runtime.MemStats
	runtime.ReadMemStats(&m1)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v := &vertex{X: 1}
		runtime.KeepAlive(v) // Force heap allocation
	}

	b.StopTimer()
	runtime.GC()
	var m2 runtime.MemStats
	runtime.ReadMemStats(&m2)
	b.ReportMetric(float64(m2.NumGC-m1.NumGC), "gcs")
}

// BenchmarkPoolChurn measures a mixed workload: a window of live slots with
// periodic bulk release, exercising bump hand-out, growth and reuse.
func BenchmarkPoolChurn(b *testing.B) {
	pool, err := New[vertex](WithBlockSize(1 << 20))
	if err != nil {
		b.Fatal(err)
	}
	defer pool.Close()

	const window = 1024
	live := make([]*vertex, 0, window)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, err := pool.Allocate()
		if err != nil {
			b.Fatal(err)
		}
		live = append(live, p)
		if len(live) == window {
			for _, q := range live {
				pool.Deallocate(q)
			}
			live = live[:0]
		}
	}
}

package fixedpool

// Rebind derives an independent Pool for a different element type U from
// an existing pool's configuration — the same pool strategy, but for
// another type. Containers use this to allocate internal helper types
// (e.g. a node type) with the same block size, logger and metrics as the
// user-facing pool.
//
// The result shares no memory with p; it is a fresh, empty pool. Extra
// options override the inherited configuration.
func Rebind[U, T any](p *Pool[T], opts ...Option) (*Pool[U], error) {
	inherited := []Option{
		WithBlockSize(p.blockSize),
		WithLogger(p.logger),
		WithMetricsCollector(p.metrics),
	}
	if p.allowPointers {
		inherited = append(inherited, AllowPointers())
	}
	return New[U](append(inherited, opts...)...)
}

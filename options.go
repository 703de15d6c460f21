package fixedpool

// DefaultBlockSize is the size in bytes of one pool block.
const DefaultBlockSize = 4096

type options struct {
	blockSize        int
	logger           *Logger
	metricsCollector MetricsCollector
	allowPointers    bool
}

func defaultOptions() options {
	return options{
		blockSize:        DefaultBlockSize,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures pool construction.
type Option func(*options)

// WithBlockSize sets the size in bytes of each block the pool maps. The
// value is fixed for the lifetime of the pool and must hold at least two
// slots of the element type; New reports a BlockSizeError otherwise.
//
// Larger blocks amortize growth cost over more allocations; smaller blocks
// keep peak overhead low for pools with few live objects.
func WithBlockSize(size int) Option {
	return func(o *options) {
		o.blockSize = size
	}
}

// WithLogger sets the logger used for block growth and teardown events.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the collector notified on allocator operations.
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// AllowPointers permits element types containing Go heap pointers.
//
// Slot memory is never scanned by the garbage collector. Setting this option
// asserts that every pointer stored in a pooled object either targets other
// pool-allocated memory or is kept alive by a reference reachable from the
// Go heap. Violating that assertion leads to use-after-free of the
// referents.
func AllowPointers() Option {
	return func(o *options) {
		o.allowPointers = true
	}
}

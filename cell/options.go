package cell

// Option configures a cell at construction.
type Option[T any] func(*config[T])

type config[T any] struct {
	drop func(T)
	cap  Capability
}

func newConfig[T any](opts []Option[T]) config[T] {
	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithDrop attaches a teardown hook that Drop runs exactly once with the
// final contained value. A cell with a hook validates ownership at Drop
// unless its capability permits cross-goroutine teardown.
func WithDrop[T any](fn func(T)) Option[T] {
	return func(c *config[T]) { c.drop = fn }
}

// WithCapability sets the transfer capability of the contained value.
func WithCapability[T any](cap Capability) Option[T] {
	return func(c *config[T]) { c.cap = cap }
}

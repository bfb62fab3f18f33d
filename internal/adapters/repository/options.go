package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCapacity caps the number of finished games the store keeps. Zero or
// negative means unbounded.
func WithCapacity(capacity int) Option {
	return func(s *MemStore) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

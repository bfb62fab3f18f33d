// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration for the reconstruction service.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WorkerCount sets the number of reconstruction workers. Each worker
	// owns one game at a time; a single game is never split.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory game job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize bounds the idempotency cache of seen game ids.
	DedupeSize int `koanf:"dedupe_size"`

	// StoreCapacity caps the number of finished games kept in memory.
	// Zero means unbounded.
	StoreCapacity int `koanf:"store_capacity"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		WorkerCount:   runtime.NumCPU(),
		QueueSize:     1024,
		DedupeSize:    10_000,
		StoreCapacity: 0,
	}
}

package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	SweepInterval     time.Duration
	DirectoryCapacity int
	PublishBuffer     int
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		SweepInterval:     100 * time.Millisecond,
		DirectoryCapacity: 1600,
		PublishBuffer:     1024,
	}
}

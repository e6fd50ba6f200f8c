package blemotion

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the runtime settings of the scanner binaries. The motion threshold
// is not configurable, see motion.Threshold.
type Config struct {
	// Duration bounds a one-shot scan. Ignored when Follow is set.
	Duration time.Duration
	// Follow streams reports until the process is signaled.
	Follow bool
	Filter Filter

	// Mock replaces the radio with the synthetic source in pkg/sources/mock.
	Mock         bool
	MockInterval time.Duration
	MockSeed     int64
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Duration:     5 * time.Second,
		MockInterval: 500 * time.Millisecond,
		MockSeed:     1,
	}
}

// Validate checks the config for values the scan loop cannot run with.
func (c Config) Validate() error {
	if !c.Follow && c.Duration <= 0 {
		return fmt.Errorf("invalid duration %s: %w", c.Duration, ErrInvalidDuration)
	}
	if c.Mock && c.MockInterval <= 0 {
		return fmt.Errorf("mock interval must be positive, got %s", c.MockInterval)
	}
	for _, prefix := range c.Filter.NamePrefixes {
		if prefix == "" {
			return errors.New("empty name prefix in filter")
		}
	}
	return nil
}

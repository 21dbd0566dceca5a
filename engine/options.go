package engine

import "github.com/Sharon-codes/UIDAI-Hackathon/schema"

// ============================================================================
// ENGINE OPTIONS — Functional options for Build()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopN           int      // ranking size
	ExcludedStates []string // states never shown in rollups
}

// WithTopN sets how many entries each top/bottom ranking holds.
// Values <= 0 fall back to DefaultTopN.
func WithTopN(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopN = n
		}
	}
}

// WithExcludedStates adds states to drop from state-level rollups,
// on top of the DROP/UNKNOWN sentinels.
func WithExcludedStates(states ...string) Option {
	return func(c *config) {
		c.ExcludedStates = append(c.ExcludedStates, states...)
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopN:           DefaultTopN,
		ExcludedStates: []string{schema.StateDrop, schema.StateUnknown},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

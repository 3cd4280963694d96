// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StorePath points at the SQLite database file. Empty keeps all
	// state in memory.
	StorePath string `koanf:"store_path"`

	// ContentPack points at a YAML pack with calibrated items and
	// scenarios. Empty serves only the embedded reference content.
	ContentPack string `koanf:"content_pack"`

	// RecalcQueueSize bounds the in-memory recalculation queue.
	RecalcQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of recalculation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// Adaptive test stopping rule.
	MinItems int     `koanf:"min_items"`
	MaxItems int     `koanf:"max_items"`
	TargetSE float64 `koanf:"target_se"`

	// Composite weights. Must sum to 1 when both set.
	CognitiveWeight float64 `koanf:"cognitive_weight"`
	EmotionalWeight float64 `koanf:"emotional_weight"`

	// MaxGaps caps the number of entries in the gap analysis.
	MaxGaps int `koanf:"max_gaps"`

	// Context multiplier bounds.
	MaxAdversityBonus float64 `koanf:"max_adversity_bonus"`
	CompletenessFloor float64 `koanf:"completeness_floor"`

	// Reaction-time weighting thresholds for behavioral sessions.
	FastReactionMS int `koanf:"fast_reaction_ms"`
	SlowReactionMS int `koanf:"slow_reaction_ms"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use
// and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		StorePath:         "",
		ContentPack:       "",
		RecalcQueueSize:   10_000,
		WorkerCount:       runtime.NumCPU() * 2,
		DedupeSize:        50_000,
		MinItems:          10,
		MaxItems:          30,
		TargetSE:          0.3,
		CognitiveWeight:   0.4,
		EmotionalWeight:   0.6,
		MaxGaps:           5,
		MaxAdversityBonus: 0.5,
		CompletenessFloor: 0.3,
		FastReactionMS:    2000,
		SlowReactionMS:    8000,
	}
	return c
}

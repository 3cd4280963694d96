package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if MOSAIC_CONFIG is set
//  3. env (prefix MOSAIC_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("MOSAIC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: MOSAIC_ADDR, MOSAIC_QUEUE_SIZE, ...
	// Map env keys like MOSAIC_QUEUE_SIZE -> queue_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MOSAIC_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "mosaic_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.MinItems < 1 || cfg.MaxItems < cfg.MinItems {
		return fmt.Errorf("%w: item bounds %d..%d", ErrInvalidConfig, cfg.MinItems, cfg.MaxItems)
	}
	if cfg.TargetSE <= 0 {
		return fmt.Errorf("%w: target_se must be positive", ErrInvalidConfig)
	}
	if sum := cfg.CognitiveWeight + cfg.EmotionalWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("%w: composite weights sum to %.3f, want 1", ErrInvalidConfig, sum)
	}
	if cfg.SlowReactionMS <= cfg.FastReactionMS {
		return fmt.Errorf("%w: slow_reaction_ms must exceed fast_reaction_ms", ErrInvalidConfig)
	}
	return nil
}

package service

import (
	"github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/content"
	repository "github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/repository"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/adaptive"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/behavioral"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/contextmult"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/mosaic"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of recalculation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the recalculation queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStorePath makes the service persist to a SQLite file instead of
// memory.
func WithStorePath(path string) Option {
	return func(s *Service) {
		s.storePath = path
	}
}

// WithStore injects a pre-built store, bypassing WithStorePath.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithContentPack loads calibrated items and scenarios from a YAML
// pack on startup.
func WithContentPack(path string) Option {
	return func(s *Service) {
		s.contentPackPath = path
	}
}

// WithContentStore injects a pre-built content store, bypassing
// WithContentPack.
func WithContentStore(store content.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.contentSrc = store
		}
	}
}

// WithAdaptiveOptions forwards options to the adaptive engine.
func WithAdaptiveOptions(opts ...adaptive.Option) Option {
	return func(s *Service) {
		s.adaptiveOpts = append(s.adaptiveOpts, opts...)
	}
}

// WithBehavioralOptions forwards options to the session aggregator.
func WithBehavioralOptions(opts ...behavioral.Option) Option {
	return func(s *Service) {
		s.behavioralOpts = append(s.behavioralOpts, opts...)
	}
}

// WithContextOptions forwards options to the multiplier calculator.
func WithContextOptions(opts ...contextmult.Option) Option {
	return func(s *Service) {
		s.contextOpts = append(s.contextOpts, opts...)
	}
}

// WithMosaicOptions forwards options to the composite engine.
func WithMosaicOptions(opts ...mosaic.Option) Option {
	return func(s *Service) {
		s.mosaicOpts = append(s.mosaicOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

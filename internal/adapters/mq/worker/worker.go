// Package worker defines worker contracts for asynchronous composite
// recalculation.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/logger"
	"github.com/carlosrios100/developmental-assessment-sub000/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Job abstracts what workers read off the queue.
// Using the model.RecalcJob type for consistency.
type Job = model.RecalcJob

// Generator regenerates a child's composite assessment.
type Generator interface {
	Recalculate(ctx context.Context, job Job) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes recalculation jobs using the provided generator.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// inflight tracks which children currently have a recalculation
// running so concurrent jobs for the same child collapse to one.
type inflight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{active: make(map[string]struct{})}
}

func (f *inflight) acquire(childID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.active[childID]; busy {
		return false
	}
	f.active[childID] = struct{}{}
	return true
}

func (f *inflight) release(childID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active, childID)
}

// InMemoryWorker implements Worker for processing recalculation jobs.
type InMemoryWorker struct {
	queue     Queue
	generator Generator
	guard     *inflight
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, generator Generator, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		generator: generator,
		guard:     newInflight(),
		name:      "worker", // default name
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing job", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob handles a single recalculation job. A job for a child
// whose recalculation is already running is dropped; the running one
// reads the same profiles and produces the same result.
func (w *InMemoryWorker) processJob(ctx context.Context, job Job) error {
	if !w.guard.acquire(job.ChildID) {
		w.logger.Debug(ctx, "recalculation already in flight, dropping job",
			logger.String("jobID", job.JobID),
			logger.String("childID", job.ChildID),
		)
		return nil
	}
	defer w.guard.release(job.ChildID)

	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.generator.Recalculate(ctx, job); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "recalc_error")
		w.logger.Error(ctx, "recalculation failed",
			logger.String("jobID", job.JobID),
			logger.String("childID", job.ChildID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to recalculate child %s: %w", job.ChildID, err)
	}

	return nil
}

// Pool manages multiple workers sharing one in-flight guard.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	generator Generator

	// Shutdown control
	shutdown chan struct{}
	stopOnce sync.Once

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, generator Generator) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:   make([]*InMemoryWorker, workerCount),
		queue:     queue,
		generator: generator,
		shutdown:  make(chan struct{}),
		logger:    logger.Get().Named("worker-pool"),
	}

	guard := newInflight()
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			generator,
			WithName("worker-"+strconv.Itoa(i)),
		)
		pool.workers[i].guard = guard
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop stops all workers after they drain the closed queue.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		if closer, ok := p.queue.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		close(p.shutdown)
	})

	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
	metrics.UpdateWorkerCount(0)
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Closing the queue ends each worker's dequeue channel once the
	// remaining jobs drain.
	p.stopOnce.Do(func() {
		if closer, ok := p.queue.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				p.logger.Error(ctx, "error closing queue", logger.Error(err))
			}
		}
		close(p.shutdown)
	})

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerCount(0)
	return nil
}

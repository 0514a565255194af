// Package worker runs extraction simulations on a bounded pool of
// goroutines, detached from the request/response lifecycle that submitted
// them.
package worker

import (
	"context"
	"log/slog"
	"sync"
)

// RunnerFunc executes one extraction run job.
type RunnerFunc func(ctx context.Context, job Job)

// Pool manages the worker goroutines processing extraction runs.
type Pool struct {
	workers  int
	jobs     chan Job
	runnerFn RunnerFunc
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPool creates a new worker pool
func NewPool(workers, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers: workers,
		jobs:    make(chan Job, queueSize),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetRunner sets the function that processes jobs
func (p *Pool) SetRunner(fn RunnerFunc) {
	p.runnerFn = fn
}

// Start starts the worker pool
func (p *Pool) Start() {
	slog.Info("Starting worker pool", "workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Submit queues a job for execution. It fails only when the pool is shutting
// down.
func (p *Pool) Submit(job Job) error {
	select {
	case p.jobs <- job:
		slog.Debug("Extraction run submitted",
			"extraction_id", job.ExtractionID,
			"source_name", job.SourceName,
		)
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Stop drains the queue and waits for in-flight runs, bounded by ctx.
func (p *Pool) Stop(ctx context.Context) {
	slog.Info("Stopping worker pool")

	close(p.jobs)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("All extraction runs completed")
	case <-ctx.Done():
		slog.Warn("Timeout waiting for extraction runs to complete")
	}

	p.cancel()
}

// QueueLength returns the current number of queued jobs
func (p *Pool) QueueLength() int {
	return len(p.jobs)
}

// worker is the goroutine that processes jobs
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	slog.Debug("Worker started", "worker_id", id)

	for job := range p.jobs {
		slog.Debug("Worker processing extraction run",
			"worker_id", id,
			"extraction_id", job.ExtractionID,
		)
		p.runnerFn(p.ctx, job)
	}

	slog.Debug("Worker stopped", "worker_id", id)
}

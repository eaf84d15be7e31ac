package worker

import (
	"context"
	"sync"

	"github.com/StavLobel/whats-the-chance-game/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker loop
func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobQueue {
		// Jobs run detached from the request that enqueued them
		ctx := context.Background()
		if err := job.Process(ctx); err != nil {
			// Log error but don't crash worker
			logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
		}
	}
}

// Enqueue adds a job to the queue. Blocks when the queue is full so
// producers apply backpressure instead of dropping work.
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// Stop closes the queue and waits for queued and in-flight jobs to finish.
// Enqueue must not be called after Stop; producers are shut down first.
func (p *Pool) Stop() {
	close(p.jobQueue)
	p.wg.Wait()
}

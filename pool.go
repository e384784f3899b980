package dailystats

import (
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/sentinel"
)

// JobFunc is a function that can be enqueued in a worker pool.
type JobFunc func() error

// WorkerPool runs jobs on a fixed number of goroutines. Failed jobs do not
// stop the others; their errors are collected and returned by Wait.
type WorkerPool struct {
	workers int
	jobs    chan JobFunc
	pending sync.WaitGroup // enqueued jobs not yet finished
	running sync.WaitGroup // live worker goroutines

	mu     sync.Mutex
	errs   *ewrap.ErrorGroup
	failed int
}

// NewWorkerPool creates a new worker pool with the given number of workers,
// clamped to at least one.
func NewWorkerPool(workers int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}

	pool := &WorkerPool{
		workers: workers,
		jobs:    make(chan JobFunc, workers),
		errs:    ewrap.NewErrorGroup(),
	}
	pool.start()

	return pool
}

// Workers returns the number of worker goroutines.
func (pool *WorkerPool) Workers() int { return pool.workers }

// Enqueue adds a job to the worker pool. It blocks while every worker is
// busy and the queue is full. Enqueue after Shutdown panics.
func (pool *WorkerPool) Enqueue(job JobFunc) {
	pool.pending.Add(1)

	pool.jobs <- job
}

// Wait blocks until every enqueued job has finished. It returns nil when all
// of them succeeded, or an error wrapping sentinel.ErrUnitFailed. The
// collected errors are cleared, so the pool can take another batch.
func (pool *WorkerPool) Wait() error {
	pool.pending.Wait()

	pool.mu.Lock()
	defer pool.mu.Unlock()

	if pool.failed == 0 {
		return nil
	}

	err := ewrap.Wrapf(sentinel.ErrUnitFailed, "%d unit(s) failed: %v", pool.failed, pool.errs.ErrorOrNil())

	pool.errs = ewrap.NewErrorGroup()
	pool.failed = 0

	return err
}

// Shutdown waits for queued jobs, then stops the workers.
func (pool *WorkerPool) Shutdown() {
	pool.pending.Wait()
	close(pool.jobs)
	pool.running.Wait()
}

// start starts the worker pool.
func (pool *WorkerPool) start() {
	pool.running.Add(pool.workers)

	for range pool.workers {
		go pool.worker()
	}
}

// worker is the main loop executed by each worker goroutine.
func (pool *WorkerPool) worker() {
	defer pool.running.Done()

	for job := range pool.jobs {
		err := runJob(job)
		if err != nil {
			pool.mu.Lock()
			pool.errs.Add(err)
			pool.failed++
			pool.mu.Unlock()
		}

		pool.pending.Done()
	}
}

// runJob turns a panicking job into an error so the worker survives.
func runJob(job JobFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ewrap.Newf("unit panicked: %v", r)
		}
	}()

	return job()
}

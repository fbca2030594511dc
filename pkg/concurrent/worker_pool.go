package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

// WorkerPool. fixed number of workers consuming jobs from a buffered queue.
// usage: Start, AddJob..., Close, then read CollectResults until it is closed (Wait closes it).
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(ctx, job)
	}
}

// Start. jobs still run after ctx is done, jobFunc decides how to treat a cancelled ctx.
func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

func (wp *WorkerPool[T, G]) GetNumWorkers() int {
	return wp.numWorkers
}

// Run. runs jobFunc on every job and returns the results in job order.
func Run[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	type indexed struct {
		i   int
		res G
	}
	type indexedJob struct {
		i   int
		job T
	}

	wp := NewWorkerPool[indexedJob, indexed](numWorkers, len(jobs))
	wp.Start(ctx, func(ctx context.Context, j indexedJob) indexed {
		return indexed{i: j.i, res: jobFunc(ctx, j.job)}
	})
	for i, job := range jobs {
		wp.AddJob(indexedJob{i: i, job: job})
	}
	wp.Close()
	wp.Wait()

	results := make([]G, len(jobs))
	for r := range wp.CollectResults() {
		results[r.i] = r.res
	}
	return results
}

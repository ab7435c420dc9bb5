// Package task runs work off the interactive thread and hands results back to it.
//
// A Job is a cancellable handle to one piece of background work. Cancellation is
// cooperative: the work receives a context.Context and is expected to check it at
// its own checkpoints. Everything that touches visual state must be posted back
// through a Dispatcher and is executed when the interactive thread drains it.
package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Work is the function executed by a Job.
type Work func(ctx context.Context) error

// Job is a handle to one in-flight background task.
type Job struct {
	name   string
	cancel context.CancelFunc
	done   chan struct{}

	mu          sync.Mutex
	cancelled   bool
	completed   bool
	err         error
	onCompleted []func(*Job)
}

// Name returns the name the job was started with.
func (j *Job) Name() string {
	return j.name
}

// Cancel requests cancellation. Cancelling a completed or already cancelled job is a no-op.
func (j *Job) Cancel() {
	j.mu.Lock()
	if j.completed || j.cancelled {
		j.mu.Unlock()
		return
	}
	j.cancelled = true
	j.mu.Unlock()
	j.cancel()
}

// IsCancelled reports whether Cancel took effect before the job completed.
func (j *Job) IsCancelled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cancelled
}

// IsCompleted reports whether the work function has returned.
func (j *Job) IsCompleted() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.completed
}

// Err returns the error the work returned, or nil. Only meaningful once completed.
func (j *Job) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Done is closed after the work returns and all completion handlers have run.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// InvokeOnCompletion registers fn to run once the work returns, whether it
// succeeded, failed or was cancelled. If the job already completed, fn runs
// immediately on the caller's goroutine.
func (j *Job) InvokeOnCompletion(fn func(*Job)) {
	j.mu.Lock()
	if j.completed {
		j.mu.Unlock()
		fn(j)
		return
	}
	j.onCompleted = append(j.onCompleted, fn)
	j.mu.Unlock()
}

func (j *Job) finish(err error) {
	j.mu.Lock()
	j.completed = true
	j.err = err
	handlers := j.onCompleted
	j.onCompleted = nil
	j.mu.Unlock()

	for _, fn := range handlers {
		fn(j)
	}
	// Release the context resources once nothing can observe it any more.
	j.cancel()
	close(j.done)
}

// Runner starts Jobs on their own goroutines.
type Runner struct {
	ctx  context.Context
	live sync.WaitGroup
}

// NewRunner creates a runner whose jobs are all children of ctx.
// Cancelling ctx cancels every job started by the runner.
func NewRunner(ctx context.Context) *Runner {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Runner{ctx: ctx}
}

// Run starts work on a new goroutine and returns its handle.
//
// Errors returned by work are logged unless they are the job's own
// cancellation. A panic inside work is recovered, logged and reported as the
// job's error, so it never takes the process down.
func (r *Runner) Run(name string, work Work) *Job {
	ctx, cancel := context.WithCancel(r.ctx)
	j := &Job{
		name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	r.live.Add(1)
	go func() {
		defer r.live.Done()
		var err error
		defer func() {
			j.finish(err)
		}()
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("task %s panicked: %v", name, rec)
				log.Printf("[Task %s] %v", name, err)
			}
		}()

		err = work(ctx)
		if err != nil && !(errors.Is(err, context.Canceled) && ctx.Err() != nil) {
			log.Printf("[Task %s] Unhandled error: %v", name, err)
		}
	}()

	return j
}

// Wait blocks until every job started so far has completed.
func (r *Runner) Wait() {
	r.live.Wait()
}

package task

import "sync"

// Dispatcher queues functions that must run on the interactive thread.
// Any goroutine may Post; only the interactive thread calls Drain.
type Dispatcher struct {
	mu    sync.Mutex
	queue []func()
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Post enqueues fn. Functions run in the order they were posted.
func (d *Dispatcher) Post(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	d.mu.Unlock()
}

// Drain runs every function queued so far and returns how many ran.
// Functions posted while draining run on the next Drain.
func (d *Dispatcher) Drain() int {
	d.mu.Lock()
	pending := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Pending returns the number of queued functions.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

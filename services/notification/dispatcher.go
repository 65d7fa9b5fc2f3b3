package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

// ErrQueueFull is reported when a task is dropped because the queue is at capacity.
var ErrQueueFull = errors.New("notification queue full")

// ErrClosed is reported for tasks dispatched after Close.
var ErrClosed = errors.New("dispatcher closed")

const (
	DefaultQueueSize   = 100
	DefaultWorkers     = 4
	DefaultTaskTimeout = 90 * time.Second
)

// Task is one detached unit of work.
type Task func(ctx context.Context) error

// TaskError is what a failed task reports on the error channel.
type TaskError struct {
	Name string
	Err  error
}

func (e TaskError) Error() string { return e.Name + ": " + e.Err.Error() }
func (e TaskError) Unwrap() error { return e.Err }

type job struct {
	name string
	fn   Task
}

// Dispatcher runs fire-and-forget tasks on a fixed worker pool. Dispatch
// never blocks the caller and task failures never reach it.
type Dispatcher struct {
	queue   chan job
	errs    chan TaskError
	timeout time.Duration
	logger  *log.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

type DispatcherOption func(*Dispatcher)

func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan job, n)
		}
	}
}

func WithTaskTimeout(t time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if t > 0 {
			d.timeout = t
		}
	}
}

// WithErrorBuffer enables Errors() with the given capacity. Errors are
// dropped when nobody drains the channel.
func WithErrorBuffer(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.errs = make(chan TaskError, n)
		}
	}
}

func WithDispatcherLogger(l *log.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher starts workers goroutines. workers <= 0 means DefaultWorkers.
func NewDispatcher(workers int, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		queue:   make(chan job, DefaultQueueSize),
		timeout: DefaultTaskTimeout,
		logger:  log.New("dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

// Dispatch enqueues fn. It reports false when the task was dropped.
func (d *Dispatcher) Dispatch(name string, fn Task) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Errorf("%s dropped: %v", name, ErrClosed)
		d.report(TaskError{Name: name, Err: ErrClosed})
		return false
	}

	select {
	case d.queue <- job{name: name, fn: fn}:
		return true
	default:
		d.logger.Errorf("%s dropped: %v", name, ErrQueueFull)
		d.report(TaskError{Name: name, Err: ErrQueueFull})
		return false
	}
}

// Errors returns the error channel, or nil when WithErrorBuffer was not set.
func (d *Dispatcher) Errors() <-chan TaskError {
	return d.errs
}

// Close stops accepting tasks and waits for queued ones until ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.run(j)
	}
}

func (d *Dispatcher) run(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return j.fn(ctx)
	}()

	if err != nil {
		d.logger.Errorf("background task %s failed: %v", j.name, err)
		d.report(TaskError{Name: j.name, Err: err})
	}
}

func (d *Dispatcher) report(e TaskError) {
	if d.errs == nil {
		return
	}
	select {
	case d.errs <- e:
	default:
	}
}

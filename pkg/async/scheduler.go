package async

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Scheduler runs tasks on some execution context.
type Scheduler interface {
	Schedule(task func())
}

type immediate struct{}

func (immediate) Schedule(task func()) { task() }

// Immediate runs every task inline on the calling goroutine.
var Immediate Scheduler = immediate{}

// Background runs each task on its own goroutine, at most workers at a time.
type Background struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewBackground creates a background scheduler with the given concurrency.
// A non-positive workers value allows a single task at a time.
func NewBackground(workers int) *Background {
	if workers < 1 {
		workers = 1
	}
	return &Background{sem: semaphore.NewWeighted(int64(workers))}
}

// Schedule starts task on a new goroutine once a worker slot is free.
func (b *Background) Schedule(task func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		// Acquire only fails for a cancelled context.
		_ = b.sem.Acquire(context.Background(), 1)
		defer b.sem.Release(1)
		task()
	}()
}

// Wait blocks until every scheduled task has returned.
func (b *Background) Wait() {
	b.wg.Wait()
}

// Serial runs tasks one at a time, in submission order, on a single
// dedicated goroutine. It plays the role of a main thread.
type Serial struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
	once   sync.Once
}

// NewSerial creates a serial scheduler and starts its goroutine.
// Close must be called to stop it.
func NewSerial() *Serial {
	s := &Serial{done: make(chan struct{})}
	s.cond = sync.NewCond(&s.mu)
	go s.loop()
	return s
}

// Schedule appends task to the queue. After Close, tasks run inline.
func (s *Serial) Schedule(task func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		task()
		return
	}
	s.queue = append(s.queue, task)
	s.mu.Unlock()
	s.cond.Signal()
}

// Close runs the queued tasks, then stops the goroutine.
func (s *Serial) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cond.Broadcast()
	})
	<-s.done
}

func (s *Serial) loop() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		task := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		task()
	}
}

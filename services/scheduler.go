package services

import (
	"sync"
	"time"
)

type taskKey struct {
	scope   string // room id, or player id for per-player tasks
	concern string
}

type task struct {
	ticker *time.Ticker
	stop   chan struct{}
}

// Scheduler owns every periodic task in the server, keyed by scope and
// concern, so tearing down a room (or a disconnecting player) is a single
// cancel call instead of four parallel timer maps.
type Scheduler struct {
	mu    sync.Mutex
	tasks map[taskKey]*task
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[taskKey]*task)}
}

// Start launches fn on a fixed interval. Starting an already-running
// scope/concern pair is a no-op.
func (s *Scheduler) Start(scope, concern string, interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := taskKey{scope: scope, concern: concern}
	if _, running := s.tasks[key]; running {
		return
	}

	t := &task{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}
	s.tasks[key] = t

	go func() {
		for {
			select {
			case <-t.ticker.C:
				fn()
			case <-t.stop:
				return
			}
		}
	}()
}

// Has reports whether a task is running for the scope/concern pair.
func (s *Scheduler) Has(scope, concern string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, running := s.tasks[taskKey{scope: scope, concern: concern}]
	return running
}

// Cancel stops one task. Safe to call from inside the task's own fn.
func (s *Scheduler) Cancel(scope, concern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(taskKey{scope: scope, concern: concern})
}

// CancelScope stops every task for a scope.
func (s *Scheduler) CancelScope(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.tasks {
		if key.scope == scope {
			s.cancelLocked(key)
		}
	}
}

// CancelAll stops everything; used on shutdown.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.tasks {
		s.cancelLocked(key)
	}
}

func (s *Scheduler) cancelLocked(key taskKey) {
	t, ok := s.tasks[key]
	if !ok {
		return
	}
	t.ticker.Stop()
	close(t.stop)
	delete(s.tasks, key)
}

package mock

import (
	"sync"
	"time"
	"weather-dashboard/internal/ports"
)

// Scheduler is a manual clock: callbacks run only when Fire is called.
type Scheduler struct {
	mu     sync.Mutex
	timers []*timer
}

type timer struct {
	s       *Scheduler
	d       time.Duration
	f       func()
	stopped bool
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Schedule(d time.Duration, f func()) ports.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &timer{s: s, d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Fire runs every live callback scheduled with delay d, in scheduling order,
// and reports how many ran. Stopped timers are discarded.
func (s *Scheduler) Fire(d time.Duration) int {
	s.mu.Lock()
	var due []*timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.stopped:
		case t.d == d:
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	s.timers = kept
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

// Pending counts live callbacks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

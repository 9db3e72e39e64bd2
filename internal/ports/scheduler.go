package ports

import "time"

// Timer is the cancellable handle returned by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc satisfies it in production;
// tests substitute a manual clock.
type Scheduler func(d time.Duration, f func()) Timer

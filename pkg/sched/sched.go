// Package sched provides the clock and timer service the clustering
// protocol runs on: a wall-clock implementation and a deterministic
// discrete-event implementation for simulation and tests.
package sched

import "time"

// Handle identifies a scheduled callback.
type Handle uint64

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

// Scheduler schedules delayed and periodic callbacks.
// Cancelling an unknown or already cancelled handle is a no-op.
type Scheduler interface {
	Clock
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Handle
	// Every runs fn every interval, first after one interval. Intervals
	// below MinInterval are raised to it.
	Every(interval time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// Epoch is the zero instant of simulated time. Wire timestamps are
// nanoseconds since the Unix epoch, so simulated time starts there too.
var Epoch = time.Unix(0, 0)

// MinInterval is the shortest period Every accepts.
const MinInterval = time.Millisecond

func clampInterval(d time.Duration) time.Duration {
	return max(d, MinInterval)
}

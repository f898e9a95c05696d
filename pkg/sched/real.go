package sched

import (
	"sync"
	"time"
)

// Real schedules callbacks on wall-clock timers. Callbacks run on their own
// goroutines; callers serialize their own state.
type Real struct {
	mu     sync.Mutex
	next   Handle
	timers map[Handle]*realTimer
}

type realTimer struct {
	timer   *time.Timer
	stopped bool
}

var _ Scheduler = (*Real)(nil)

func NewReal() *Real {
	return &Real{timers: make(map[Handle]*realTimer)}
}

func (r *Real) Now() time.Time {
	return time.Now()
}

func (r *Real) AfterFunc(d time.Duration, fn func()) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	rt := &realTimer{}
	rt.timer = time.AfterFunc(d, func() {
		r.mu.Lock()
		if rt.stopped {
			r.mu.Unlock()
			return
		}
		delete(r.timers, h)
		r.mu.Unlock()
		fn()
	})
	r.timers[h] = rt
	return h
}

func (r *Real) Every(interval time.Duration, fn func()) Handle {
	interval = clampInterval(interval)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	h := r.next
	rt := &realTimer{}
	var tick func()
	tick = func() {
		r.mu.Lock()
		if rt.stopped {
			r.mu.Unlock()
			return
		}
		rt.timer = time.AfterFunc(interval, tick)
		r.mu.Unlock()
		fn()
	}
	rt.timer = time.AfterFunc(interval, tick)
	r.timers[h] = rt
	return h
}

func (r *Real) Cancel(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt, ok := r.timers[h]
	if !ok {
		return
	}
	rt.stopped = true
	rt.timer.Stop()
	delete(r.timers, h)
}

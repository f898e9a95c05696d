package sched

import (
	"container/heap"
	"sync"
	"time"
)

// Manual is a discrete-event scheduler. Time only moves when Advance is
// called, and due callbacks run on the caller's goroutine in due-time order
// (ties in scheduling order).
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	next   Handle
	queue  eventQueue
	active map[Handle]struct{}
}

type event struct {
	at       time.Time
	seq      uint64
	handle   Handle
	interval time.Duration
	fn       func()
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns a scheduler whose clock starts at Epoch.
func NewManual() *Manual {
	return NewManualAt(Epoch)
}

func NewManualAt(start time.Time) *Manual {
	return &Manual{
		now:    start,
		active: make(map[Handle]struct{}),
	}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	return m.schedule(d, 0, fn)
}

func (m *Manual) Every(interval time.Duration, fn func()) Handle {
	interval = clampInterval(interval)
	return m.schedule(interval, interval, fn)
}

func (m *Manual) schedule(d, interval time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.next++
	h := m.next
	m.active[h] = struct{}{}
	m.pushLocked(&event{at: m.now.Add(d), handle: h, interval: interval, fn: fn})
	return h
}

func (m *Manual) pushLocked(ev *event) {
	m.seq++
	ev.seq = m.seq
	heap.Push(&m.queue, ev)
}

func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, h)
}

// Pending returns the number of live scheduled callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Advance moves the clock forward by d, running every callback that falls
// due on the way, including ones scheduled by callbacks.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.Now().Add(d))
}

// AdvanceTo moves the clock to t. Moving backwards is a no-op.
func (m *Manual) AdvanceTo(t time.Time) {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 || m.queue[0].at.After(t) {
			if t.After(m.now) {
				m.now = t
			}
			m.mu.Unlock()
			return
		}

		ev := heap.Pop(&m.queue).(*event)
		if _, ok := m.active[ev.handle]; !ok {
			m.mu.Unlock()
			continue
		}
		m.now = ev.at
		if ev.interval > 0 {
			m.pushLocked(&event{at: ev.at.Add(ev.interval), handle: ev.handle, interval: ev.interval, fn: ev.fn})
		} else {
			delete(m.active, ev.handle)
		}
		m.mu.Unlock()

		ev.fn()
	}
}

type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

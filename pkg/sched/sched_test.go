package sched

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_AfterFuncRunsInOrder(t *testing.T) {
	m := NewManual()
	var order []string

	m.AfterFunc(3*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(time.Millisecond, func() { order = append(order, "b") })

	m.Advance(2 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, Epoch.Add(2*time.Millisecond), m.Now())

	m.Advance(time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_ClockIsEventTimeInsideCallback(t *testing.T) {
	m := NewManual()
	var seen time.Time
	m.AfterFunc(5*time.Millisecond, func() { seen = m.Now() })

	m.Advance(time.Second)
	assert.Equal(t, Epoch.Add(5*time.Millisecond), seen)
	assert.Equal(t, Epoch.Add(time.Second), m.Now())
}

func TestManual_EveryAndCancel(t *testing.T) {
	m := NewManual()
	count := 0
	h := m.Every(100*time.Millisecond, func() { count++ })

	m.Advance(350 * time.Millisecond)
	assert.Equal(t, 3, count)

	m.Cancel(h)
	m.Advance(time.Second)
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, m.Pending())

	// Cancelling twice is harmless.
	m.Cancel(h)
}

func TestManual_CallbackCanSchedule(t *testing.T) {
	m := NewManual()
	var fired []time.Duration

	var chain func()
	chain = func() {
		fired = append(fired, m.Now().Sub(Epoch))
		if len(fired) < 3 {
			m.AfterFunc(10*time.Millisecond, chain)
		}
	}
	m.AfterFunc(10*time.Millisecond, chain)

	m.Advance(time.Second)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}, fired)
}

func TestManual_CancelFromCallback(t *testing.T) {
	m := NewManual()
	count := 0
	var h Handle
	h = m.Every(time.Millisecond, func() {
		count++
		if count == 2 {
			m.Cancel(h)
		}
	})

	m.Advance(10 * time.Millisecond)
	assert.Equal(t, 2, count)
}

func TestReal_AfterFuncAndCancel(t *testing.T) {
	r := NewReal()
	var fired, cancelled atomic.Int32

	r.AfterFunc(5*time.Millisecond, func() { fired.Add(1) })
	h := r.AfterFunc(20*time.Millisecond, func() { cancelled.Add(1) })
	r.Cancel(h)

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), cancelled.Load())
}

func TestReal_EveryStopsAfterCancel(t *testing.T) {
	r := NewReal()
	var ticks atomic.Int32
	h := r.Every(2*time.Millisecond, func() { ticks.Add(1) })

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	r.Cancel(h)
	time.Sleep(5 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())
}

func TestEvery_ClampsNonPositiveInterval(t *testing.T) {
	m := NewManual()
	count := 0
	m.Every(0, func() { count++ })
	m.Every(-time.Second, func() { count++ })
	m.Advance(10 * MinInterval)
	assert.Equal(t, 20, count)

	r := NewReal()
	var ticks atomic.Int32
	h := r.Every(0, func() { ticks.Add(1) })
	time.Sleep(50 * time.Millisecond)
	r.Cancel(h)
	assert.LessOrEqual(t, ticks.Load(), int32(60), "zero interval must not spin")
	assert.Positive(t, ticks.Load())
}

package schedule

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)

func TestManual_Every(t *testing.T) {
	m := NewManual(epoch)
	var calls int
	cancel := m.Every(200*time.Millisecond, func() { calls++ })

	m.Advance(199 * time.Millisecond)
	assert.Equal(t, 0, calls)

	m.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)

	m.Advance(time.Second)
	assert.Equal(t, 6, calls)

	cancel()
	cancel() // idempotent
	m.Advance(time.Second)
	assert.Equal(t, 6, calls)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_After(t *testing.T) {
	m := NewManual(epoch)
	var calls int
	m.After(500*time.Millisecond, func() { calls++ })

	m.Advance(time.Second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, epoch.Add(time.Second), m.Now())

	m.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestManual_JobsRunInOrder(t *testing.T) {
	m := NewManual(epoch)
	var order []string
	m.After(300*time.Millisecond, func() { order = append(order, "b") })
	m.After(100*time.Millisecond, func() { order = append(order, "a") })
	m.Every(200*time.Millisecond, func() { order = append(order, "tick") })

	m.Advance(400 * time.Millisecond)
	assert.Equal(t, []string{"a", "tick", "b", "tick"}, order)
}

func TestManual_JobCanCancelItself(t *testing.T) {
	m := NewManual(epoch)
	var calls int
	var cancel Cancel
	cancel = m.Every(time.Second, func() {
		calls++
		if calls == 2 {
			cancel()
		}
	})

	m.Advance(10 * time.Second)
	assert.Equal(t, 2, calls)
}

func TestCronScheduler(t *testing.T) {
	s := NewCronScheduler()
	defer s.Stop()

	t.Run("sub-second interval", func(t *testing.T) {
		var calls int32
		cancel := s.Every(10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
		assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, time.Second, 5*time.Millisecond)
		cancel()

		n := atomic.LoadInt32(&calls)
		time.Sleep(50 * time.Millisecond)
		assert.LessOrEqual(t, atomic.LoadInt32(&calls), n+1)
	})

	t.Run("after", func(t *testing.T) {
		var calls int32
		s.After(10*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
		assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("cancelled after", func(t *testing.T) {
		var calls int32
		cancel := s.After(20*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })
		cancel()
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})
}

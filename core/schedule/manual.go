package schedule

import (
	"sort"
	"sync"
	"time"
)

type manualJob struct {
	seq      int
	next     time.Time
	interval time.Duration // 0 for one-shot jobs
	fn       func()
}

// Manual is a Scheduler driven by Advance instead of the wall clock.
type Manual struct {
	mu   sync.Mutex
	now  time.Time
	seq  int
	jobs map[int]*manualJob
}

var _ Scheduler = (*Manual)(nil)

func NewManual(now time.Time) *Manual {
	return &Manual{now: now, jobs: make(map[int]*manualJob)}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(d time.Duration, fn func()) Cancel {
	return m.add(d, d, fn)
}

func (m *Manual) After(d time.Duration, fn func()) Cancel {
	return m.add(d, 0, fn)
}

// Pending returns how many jobs are still scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	seq := m.seq
	m.jobs[seq] = &manualJob{seq: seq, next: m.now.Add(delay), interval: interval, fn: fn}
	return once(func() {
		m.mu.Lock()
		delete(m.jobs, seq)
		m.mu.Unlock()
	})
}

// Advance moves the clock forward by d, running due jobs in order.
// Jobs run without the lock held, so they may schedule or cancel jobs.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		job := m.nextDue(target)
		if job == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = job.next
		if job.interval > 0 {
			job.next = job.next.Add(job.interval)
		} else {
			delete(m.jobs, job.seq)
		}
		fn := job.fn
		m.mu.Unlock()

		fn()
	}
}

func (m *Manual) nextDue(target time.Time) *manualJob {
	due := make([]*manualJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		if !job.next.After(target) {
			due = append(due, job)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next.Equal(due[j].next) {
			return due[i].seq < due[j].seq
		}
		return due[i].next.Before(due[j].next)
	})
	return due[0]
}

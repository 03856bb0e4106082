package deadline

import (
	"sync"
	"time"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/schedule"
)

// DefaultPollInterval is how often a Countdown recomputes its Reading unless told otherwise.
const DefaultPollInterval = time.Minute

// Countdown keeps the Reading of a deadline current until stopped.
type Countdown struct {
	due      time.Time
	clock    core.Clock
	sched    schedule.Scheduler
	interval time.Duration

	mu       sync.Mutex
	current  Reading
	onChange func(Reading)
	cancel   schedule.Cancel
}

func NewCountdown(due time.Time, clock core.Clock, sched schedule.Scheduler, interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Countdown{
		due:      due,
		clock:    clock,
		sched:    sched,
		interval: interval,
		current:  Read(due, clock.Now()),
	}
}

// Start schedules the updates. onChange, if not nil, receives every new Reading.
// Once the deadline is overdue nothing can change anymore and polling stops.
func (c *Countdown) Start(onChange func(Reading)) Reading {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onChange = onChange
	c.current = Read(c.due, c.clock.Now())
	if c.cancel == nil && c.current.Level != LevelOverdue {
		c.cancel = c.sched.Every(c.interval, c.update)
	}
	return c.current
}

func (c *Countdown) update() {
	c.mu.Lock()
	prev := c.current
	c.current = Read(c.due, c.clock.Now())
	r, onChange := c.current, c.onChange
	if r.Level == LevelOverdue && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	if onChange != nil && r != prev {
		onChange(r)
	}
}

func (c *Countdown) Current() Reading {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Running reports whether updates are still scheduled.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

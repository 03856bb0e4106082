// Package schedule runs callbacks on intervals or after a delay. Every job can be cancelled.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Cancel stops a scheduled job. It is safe to call more than once.
type Cancel func()

type Scheduler interface {
	// Every calls fn every d, the first time d from now.
	Every(d time.Duration, fn func()) Cancel
	// After calls fn once, d from now.
	After(d time.Duration, fn func()) Cancel
}

// CronScheduler runs interval jobs of at least one second on a cron runner.
// Shorter intervals get their own ticker since cron schedules have a one second resolution.
type CronScheduler struct {
	cron *cron.Cron
}

var _ Scheduler = (*CronScheduler)(nil)

// NewCronScheduler returns a started CronScheduler.
func NewCronScheduler() *CronScheduler {
	c := cron.New()
	c.Start()
	return &CronScheduler{cron: c}
}

// Stop stops the cron runner. The returned context is done once running jobs complete.
func (s *CronScheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *CronScheduler) Every(d time.Duration, fn func()) Cancel {
	if d < time.Second {
		return tick(d, fn)
	}
	id := s.cron.Schedule(cron.Every(d), cron.FuncJob(fn))
	return once(func() { s.cron.Remove(id) })
}

func (s *CronScheduler) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return once(func() { t.Stop() })
}

func tick(d time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return once(func() {
		ticker.Stop()
		close(done)
	})
}

func once(fn func()) Cancel {
	var o sync.Once
	return func() { o.Do(fn) }
}

package core

import (
	"context"
	"time"
)

// Latency holds the artificial delay applied to each kind of repository operation.
// The zero value disables every delay.
type Latency struct {
	GetAll  time.Duration
	GetByID time.Duration
	Query   time.Duration
	Create  time.Duration
	Update  time.Duration
	Delete  time.Duration
	Upload  time.Duration
}

// Wait blocks for d or until ctx is done, whichever happens first.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

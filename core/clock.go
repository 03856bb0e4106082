package core

import "time"

// Clock tells the current time. Services take one so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock returns the wall clock, in UTC.
func SystemClock() Clock { return systemClock{} }

// FixedClock always returns t.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

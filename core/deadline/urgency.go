package deadline

import (
	"fmt"
	"math"
	"time"
)

type Level string

// Levels, from most to least pressing.
const (
	LevelOverdue  Level = "overdue"
	LevelCritical Level = "critical"
	LevelUrgent   Level = "urgent"
	LevelWarning  Level = "warning"
	LevelSafe     Level = "safe"
)

// Colors
const (
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorGreen  = "green"
)

// Icons
const (
	IconAlertCircle = "AlertCircle"
	IconClock       = "Clock"
	IconCheckCircle = "CheckCircle"
)

const (
	hour = time.Hour
	day  = 24 * time.Hour
)

// Classify maps the time left before due to an urgency Level.
// Every lower bound is inclusive: exactly 24h left is LevelWarning.
func Classify(due, now time.Time) Level {
	if due.Before(now) {
		return LevelOverdue
	}
	switch left := due.Sub(now); {
	case left < hour:
		return LevelCritical
	case left < day:
		return LevelUrgent
	case left < 3*day:
		return LevelWarning
	default:
		return LevelSafe
	}
}

// Reading is what a deadline timer shows at a given instant.
type Reading struct {
	Due      time.Time `json:"due"`
	Level    Level     `json:"level"`
	TimeLeft string    `json:"time_left"`
	Color    string    `json:"color"`
	Icon     string    `json:"icon"`
	Pulse    bool      `json:"pulse"`
}

func Read(due, now time.Time) Reading {
	r := Reading{Due: due, Level: Classify(due, now)}
	left := due.Sub(now)

	switch r.Level {
	case LevelOverdue:
		r.TimeLeft = "Overdue"
		r.Color, r.Icon = ColorRed, IconAlertCircle
	case LevelCritical:
		r.TimeLeft = "Less than 1 hour"
		r.Color, r.Icon, r.Pulse = ColorRed, IconClock, true
	case LevelUrgent:
		r.TimeLeft = fmt.Sprintf("%d hours", int(left/hour))
		r.Color, r.Icon = ColorYellow, IconClock
	case LevelWarning:
		r.TimeLeft = Distance(due, now)
		r.Color, r.Icon = ColorYellow, IconClock
	default:
		r.TimeLeft = Distance(due, now)
		r.Color, r.Icon = ColorGreen, IconCheckCircle
	}
	return r
}

const (
	minutesInDay       = 1440
	minutesInTwoDays   = 2520 // 42h, "1 day" stops there
	minutesInMonth     = 43200
	minutesInTwoMonths = 86400
)

// Distance describes the gap between t and now in words, eg. "in 2 days", "about 1 month ago".
func Distance(t, now time.Time) string {
	d := t.Sub(now)
	words := distanceWords(d)
	if d >= 0 {
		return "in " + words
	}
	return words + " ago"
}

func distanceWords(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	minutes := int(math.Round(d.Minutes()))

	switch {
	case minutes == 0:
		return "less than a minute"
	case minutes < 45:
		return plural(minutes, "minute")
	case minutes < 90:
		return "about 1 hour"
	case minutes < minutesInDay:
		return "about " + plural(roundDiv(minutes, 60), "hour")
	case minutes < minutesInTwoDays:
		return "1 day"
	case minutes < minutesInMonth:
		return plural(roundDiv(minutes, minutesInDay), "day")
	case minutes < minutesInTwoMonths:
		return "about " + plural(roundDiv(minutes, minutesInMonth), "month")
	}

	months := minutes / minutesInMonth
	if months < 12 {
		return plural(roundDiv(minutes, minutesInMonth), "month")
	}
	years, rest := months/12, months%12
	switch {
	case rest < 3:
		return "about " + plural(years, "year")
	case rest < 9:
		return "over " + plural(years, "year")
	default:
		return "almost " + plural(years+1, "year")
	}
}

func roundDiv(n, by int) int {
	return int(math.Round(float64(n) / float64(by)))
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

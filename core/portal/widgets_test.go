package portal_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/grading"
	. "github.com/trezcool/classtrack/core/portal"
	"github.com/trezcool/classtrack/core/submission"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Data Structures", "DS"},
		{"Calculus III", "CI"},
		{"physics ii lab", "PI"},
		{"Art", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.name))
		})
	}
}

func TestFormatMB(t *testing.T) {
	assert.Equal(t, "5.0 MB", FormatMB(5*1024*1024, 1))
	assert.Equal(t, "1.19 MB", FormatMB(1245678, 2))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 assignment", Plural(1, "assignment"))
	assert.Equal(t, "0 assignments", Plural(0, "assignment"))
	assert.Equal(t, "3 assignments", Plural(3, "assignment"))
}

func TestNewRing(t *testing.T) {
	r := NewRing(75, 60, 8, ColorPrimary)
	assert.Equal(t, 26.0, r.Radius)
	assert.InDelta(t, 2*math.Pi*26, r.Circumference, 1e-9)
	assert.InDelta(t, r.Circumference/4, r.DashOffset, 1e-9)
	assert.Equal(t, "75%", r.Label)

	assert.Equal(t, 100.0, NewRing(140, 60, 8, ColorPrimary).Percentage)
	assert.Equal(t, 0.0, NewRing(-5, 60, 8, ColorPrimary).Percentage)
}

func TestGradeColor(t *testing.T) {
	assert.Equal(t, ColorGreen, GradeColor(80))
	assert.Equal(t, ColorYellow, GradeColor(79.9))
	assert.Equal(t, ColorYellow, GradeColor(70))
	assert.Equal(t, ColorRed, GradeColor(69.9))
}

func TestBadges(t *testing.T) {
	assert.Equal(t, Badge{Label: "Overdue", Variant: VariantError}, StatusBadge(assignment.StatusOverdue))
	assert.Equal(t, Badge{Label: "Pending", Variant: VariantWarning}, StatusBadge(assignment.StatusPending))
	assert.Equal(t, VariantSuccess, LetterBadge(grading.LetterA).Variant)
	assert.Equal(t, VariantError, LetterBadge(grading.LetterD).Variant)
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	future := assignment.Assignment{ID: 1, DueDate: now.Add(time.Hour), Status: assignment.StatusOverdue}
	past := assignment.Assignment{ID: 1, DueDate: now.Add(-time.Hour), Status: assignment.StatusPending}

	submitted := submission.Submission{ID: 1, AssignmentID: 1}
	graded := submission.Submission{ID: 2, AssignmentID: 1, Grade: null.Float64From(90)}

	tests := []struct {
		name string
		a    assignment.Assignment
		subs []submission.Submission
		want assignment.Status
	}{
		{"pending", future, nil, assignment.StatusPending},
		{"overdue", past, nil, assignment.StatusOverdue},
		{"due now", assignment.Assignment{DueDate: now}, nil, assignment.StatusPending},
		{"submitted", future, []submission.Submission{submitted}, assignment.StatusSubmitted},
		{"submitted late", past, []submission.Submission{submitted}, assignment.StatusSubmitted},
		{"graded", past, []submission.Submission{submitted, graded}, assignment.StatusGraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.a, tt.subs, now))
		})
	}
}

func TestGreeting(t *testing.T) {
	day := func(h int) time.Time { return time.Date(2025, time.January, 15, h, 0, 0, 0, time.UTC) }
	assert.Equal(t, "Good morning", Greeting(day(0)))
	assert.Equal(t, "Good morning", Greeting(day(11)))
	assert.Equal(t, "Good afternoon", Greeting(day(12)))
	assert.Equal(t, "Good afternoon", Greeting(day(17)))
	assert.Equal(t, "Good evening", Greeting(day(18)))
}

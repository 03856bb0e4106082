package portal

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/assignment"
)

type (
	DashboardStats struct {
		PendingAssignments int     `json:"pending_assignments"`
		UpcomingDeadlines  int     `json:"upcoming_deadlines"`
		CurrentGPA         float64 `json:"current_gpa"`
		CompletionRate     float64 `json:"completion_rate"`
	}

	Dashboard struct {
		Greeting  string           `json:"greeting"`
		FirstName string           `json:"first_name"`
		Headline  string           `json:"headline"`
		Stats     DashboardStats   `json:"stats"`
		Upcoming  []AssignmentCard `json:"upcoming"`
	}
)

// Greeting depends on the hour: morning before 12, afternoon before 18, evening after.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// Dashboard lists the pending assignments due within the upcoming window, soonest first.
// Assignments the student already submitted are left out even if still stored as pending.
func (p *Portal) Dashboard(ctx context.Context) (Dashboard, error) {
	stud, err := p.opts.Students.GetCurrent(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "getting current student")
	}
	upcoming, err := p.opts.Assignments.GetUpcoming(ctx, p.opts.UpcomingWindow)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying upcoming assignments")
	}
	pending, err := p.opts.Assignments.GetPending(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying pending assignments")
	}
	subs, err := p.submissionsByAssignment(ctx, stud.ID)
	if err != nil {
		return Dashboard{}, err
	}

	now := p.now()
	cards := make([]AssignmentCard, 0, len(upcoming))
	for _, a := range upcoming {
		if status := DeriveStatus(a, subs[a.ID], now); status == assignment.StatusPending {
			cards = append(cards, newAssignmentCard(a, status, now))
		}
	}
	var pendingCount int
	for _, a := range pending {
		if DeriveStatus(a, subs[a.ID], now) == assignment.StatusPending {
			pendingCount++
		}
	}

	return Dashboard{
		Greeting:  Greeting(now),
		FirstName: stud.FirstName(),
		Headline:  "You have " + Plural(len(cards), "assignment") + " due this week",
		Stats: DashboardStats{
			PendingAssignments: pendingCount,
			UpcomingDeadlines:  len(cards),
			CurrentGPA:         stud.OverallGrade,
			CompletionRate:     stud.CompletionRate,
		},
		Upcoming: cards,
	}, nil
}

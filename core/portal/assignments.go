package portal

import (
	"context"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
)

type (
	AssignmentsQuery struct {
		Search string `query:"search"`
		Status string `query:"status"` // derived status, "all" or empty for any
		Course string `query:"course"` // course ID, "all" or empty for any
	}

	AssignmentsPage struct {
		Assignments   []AssignmentCard `json:"assignments"`
		Showing       int              `json:"showing"`
		Total         int              `json:"total"`
		Summary       string           `json:"summary"`
		StatusFilters []FilterOption   `json:"status_filters"`
		Courses       []FilterOption   `json:"courses"`
		ActiveFilters int              `json:"active_filters"`
	}
)

var statusFilterLabels = []struct {
	status assignment.Status
	label  string
}{
	{assignment.StatusPending, "Pending"},
	{assignment.StatusSubmitted, "Submitted"},
	{assignment.StatusOverdue, "Overdue"},
	{assignment.StatusGraded, "Graded"},
}

// MatchesSearch does a case-insensitive match on the title, course name or description.
func MatchesSearch(a assignment.Assignment, search string) bool {
	return core.ContainsFold(a.Title, search) ||
		core.ContainsFold(a.CourseName, search) ||
		core.ContainsFold(a.Description, search)
}

// Assignments filters by search, then derived status, then course, and sorts by due date.
func (p *Portal) Assignments(ctx context.Context, q AssignmentsQuery) (AssignmentsPage, error) {
	stud, err := p.opts.Students.GetCurrent(ctx)
	if err != nil {
		return AssignmentsPage{}, errors.Wrap(err, "getting current student")
	}
	all, err := p.opts.Assignments.GetAll(ctx)
	if err != nil {
		return AssignmentsPage{}, errors.Wrap(err, "querying assignments")
	}
	subs, err := p.submissionsByAssignment(ctx, stud.ID)
	if err != nil {
		return AssignmentsPage{}, err
	}

	now := p.now()
	search := core.CleanString(q.Search)
	counts := make(map[assignment.Status]int, len(statusFilterLabels))
	cards := make([]AssignmentCard, 0, len(all))
	for _, a := range all {
		status := DeriveStatus(a, subs[a.ID], now)
		counts[status]++

		if search != "" && !MatchesSearch(a, search) {
			continue
		}
		if !isAll(q.Status) && string(status) != q.Status {
			continue
		}
		if !isAll(q.Course) && a.CourseID != q.Course {
			continue
		}
		cards = append(cards, newAssignmentCard(a, status, now))
	}
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].DueDate.Before(cards[j].DueDate) })

	statusFilters := []FilterOption{countOption(filterAll, "All Assignments", len(all))}
	for _, sf := range statusFilterLabels {
		statusFilters = append(statusFilters, countOption(string(sf.status), sf.label, counts[sf.status]))
	}

	var active int
	for _, f := range []string{q.Status, q.Course} {
		if !isAll(f) {
			active++
		}
	}

	return AssignmentsPage{
		Assignments:   cards,
		Showing:       len(cards),
		Total:         len(all),
		Summary:       "Showing " + strconv.Itoa(len(cards)) + " of " + Plural(len(all), "assignment"),
		StatusFilters: statusFilters,
		Courses:       courseOptions(all),
		ActiveFilters: active,
	}, nil
}

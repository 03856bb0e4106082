package portal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/classtrack/core/portal"
	"github.com/trezcool/classtrack/tests"
)

func assignmentIDs(cards []AssignmentCard) []int {
	ids := make([]int, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestPortal_Assignments(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		q          AssignmentsQuery
		wantIDs    []int
		wantActive int
	}{
		{"all", AssignmentsQuery{}, []int{10, 9, 6, 5, 7, 4, 3, 2, 1, 8}, 0},
		{"search calc", AssignmentsQuery{Search: "calc"}, []int{9, 3, 8}, 0},
		{"search is case insensitive", AssignmentsQuery{Search: "  LINKED "}, []int{10, 6}, 0},
		{"search description", AssignmentsQuery{Search: "vanishing"}, []int{}, 0},
		{"status pending", AssignmentsQuery{Status: "pending"}, []int{3, 2, 1, 8}, 1},
		{"status overdue", AssignmentsQuery{Status: "overdue"}, []int{4}, 1},
		{"status graded", AssignmentsQuery{Status: "graded"}, []int{10, 9, 6, 5}, 1},
		{"status all", AssignmentsQuery{Status: "all"}, []int{10, 9, 6, 5, 7, 4, 3, 2, 1, 8}, 0},
		{"course", AssignmentsQuery{Course: "CS201"}, []int{10, 6, 1}, 1},
		{"search then status then course", AssignmentsQuery{Search: "calc", Status: "graded", Course: "MATH301"}, []int{9}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := env.Portal.Assignments(ctx, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, assignmentIDs(page.Assignments))
			assert.Equal(t, len(tt.wantIDs), page.Showing)
			assert.Equal(t, 10, page.Total)
			assert.Equal(t, tt.wantActive, page.ActiveFilters)
		})
	}
}

func TestPortal_Assignments_Filters(t *testing.T) {
	env := testutil.NewEnv(t)

	page, err := env.Portal.Assignments(context.Background(), AssignmentsQuery{Search: "calc"})
	require.NoError(t, err)
	assert.Equal(t, "Showing 3 of 10 assignments", page.Summary)

	counts := make(map[string]int)
	for _, f := range page.StatusFilters {
		require.NotNil(t, f.Count)
		counts[f.Key] = *f.Count
	}
	assert.Equal(t, map[string]int{"all": 10, "pending": 4, "submitted": 1, "overdue": 1, "graded": 4}, counts)

	var courses []string
	for _, c := range page.Courses {
		courses = append(courses, c.Key)
	}
	assert.Equal(t, []string{"all", "CS201", "CS301", "MATH301", "PHYS202", "ART101"}, courses)
	assert.Equal(t, "Data Structures", page.Courses[1].Label)
}

func TestPortal_Assignments_DerivedStatus(t *testing.T) {
	env := testutil.NewEnv(t)

	page, err := env.Portal.Assignments(context.Background(), AssignmentsQuery{Status: "submitted"})
	require.NoError(t, err)
	require.Len(t, page.Assignments, 1)

	card := page.Assignments[0]
	assert.Equal(t, 7, card.ID)
	assert.Equal(t, "Submitted", card.StatusBadge.Label)
	assert.Equal(t, "View Details", card.Action)
}

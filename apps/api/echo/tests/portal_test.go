package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classtrack/core/grading"
	"github.com/trezcool/classtrack/core/portal"
)

func TestPortalAPI_Dashboard(t *testing.T) {
	app, _ := setup(t)

	rec := do(app, http.MethodGet, "/v1/dashboard")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var dash portal.Dashboard
	unmarchall(t, rec, &dash)
	assert.Equal(t, "Good morning", dash.Greeting)
	assert.Equal(t, "John", dash.FirstName)
	assert.Equal(t, portal.DashboardStats{
		PendingAssignments: 4,
		UpcomingDeadlines:  4,
		CurrentGPA:         82.5,
		CompletionRate:     75,
	}, dash.Stats)
	assert.Equal(t, []int{3, 2, 1, 8}, assignmentIDs(dash.Upcoming))
}

func TestPortalAPI_Progress(t *testing.T) {
	app, _ := setup(t)

	rec := do(app, http.MethodGet, "/v1/progress")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var prog portal.Progress
	unmarchall(t, rec, &prog)
	assert.Equal(t, 82.5, prog.CurrentGPA)
	assert.Equal(t, 5, prog.Remaining)
	assert.Equal(t, []portal.MonthlyAverage{
		{Month: "Dec", Average: 69.3},
		{Month: "Jan", Average: 95},
	}, prog.GradeHistory)
	require.Len(t, prog.Insights, 3)
	assert.Equal(t, "Top Performer", prog.Insights[1].Title)
}

func TestGradeAPI_Query(t *testing.T) {
	app, _ := setup(t)

	tests := []struct {
		name    string
		path    string
		wantIDs []int
		stats   grading.Stats
	}{
		{"all", "/v1/grades", []int{5, 6, 9, 10}, grading.Stats{Average: 75.8, Highest: 95, Lowest: 55, Total: 4}},
		{"search", "/v1/grades?search=linked", []int{6}, grading.Stats{Average: 75.8, Highest: 95, Lowest: 55, Total: 4}},
		{"course", "/v1/grades?course=CS201", []int{6, 10}, grading.Stats{Average: 76.5, Highest: 82, Lowest: 71, Total: 2}},
		{"nothing", "/v1/grades?search=zzz", []int{}, grading.Stats{Average: 75.8, Highest: 95, Lowest: 55, Total: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(app, http.MethodGet, tt.path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var page portal.GradesPage
			unmarchall(t, rec, &page)
			ids := make([]int, 0, len(page.Grades))
			for _, g := range page.Grades {
				ids = append(ids, g.AssignmentID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.stats, page.Stats)
		})
	}
}

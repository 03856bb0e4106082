package tests

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/portal"
	"github.com/trezcool/classtrack/core/upload"
	"github.com/trezcool/classtrack/tests"
)

func assignmentIDs(cards []portal.AssignmentCard) []int {
	ids := make([]int, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestAssignmentAPI_Query(t *testing.T) {
	app, _ := setup(t)

	tests := []struct {
		name    string
		path    string
		wantIDs []int
		summary string
	}{
		{"all", "/v1/assignments", []int{10, 9, 6, 5, 7, 4, 3, 2, 1, 8}, "Showing 10 of 10 assignments"},
		{"search", "/v1/assignments?search=CALC", []int{9, 3, 8}, "Showing 3 of 10 assignments"},
		{"status", "/v1/assignments?status=overdue", []int{4}, "Showing 1 of 10 assignments"},
		{"course", "/v1/assignments?course=CS201&status=all", []int{10, 6, 1}, "Showing 3 of 10 assignments"},
		{"trailing slash", "/v1/assignments/?status=submitted", []int{7}, "Showing 1 of 10 assignments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(app, http.MethodGet, tt.path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var page portal.AssignmentsPage
			unmarchall(t, rec, &page)
			assert.Equal(t, tt.wantIDs, assignmentIDs(page.Assignments))
			assert.Equal(t, tt.summary, page.Summary)
			assert.Equal(t, 10, page.Total)
		})
	}
}

func TestAssignmentAPI_Retrieve(t *testing.T) {
	app, _ := setup(t)

	t.Run("open", func(t *testing.T) {
		rec := do(app, http.MethodGet, "/v1/assignments/3")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var detail portal.AssignmentDetail
		unmarchall(t, rec, &detail)
		assert.Equal(t, 3, detail.Assignment.ID)
		assert.Equal(t, assignment.StatusPending, detail.Status)
		assert.True(t, detail.CanSubmit)
		assert.Equal(t, "5.0 MB", detail.Requirements.MaxFileSize)
	})

	t.Run("graded", func(t *testing.T) {
		rec := do(app, http.MethodGet, "/v1/assignments/5")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var detail portal.AssignmentDetail
		unmarchall(t, rec, &detail)
		assert.Equal(t, assignment.StatusGraded, detail.Status)
		assert.False(t, detail.CanSubmit)
		require.NotNil(t, detail.Submission)
		assert.Equal(t, "renaissance_perspective.pdf", detail.Submission.FileName)
		assert.Equal(t, 95.0, detail.Submission.Grade.Float64)
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(app, http.MethodGet, "/v1/assignments/99")
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "assignment with id 99 not found"}),
		}, rec)
	})
}

func TestAssignmentAPI_Create(t *testing.T) {
	app, env := setup(t)
	due := env.Now().Add(48 * time.Hour)

	t.Run("valid", func(t *testing.T) {
		rec := do(app, http.MethodPost, "/v1/assignments", marchallObj(t, map[string]interface{}{
			"title":              "  Graph Traversals  ",
			"course_id":          "CS201",
			"course_name":        "Data Structures",
			"description":        "BFS & DFS",
			"due_date":           due,
			"max_points":         100,
			"allowed_file_types": []string{".ZIP", ".java"},
			"max_file_size":      1048576,
		}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var a assignment.Assignment
		unmarchall(t, rec, &a)
		assert.Equal(t, 11, a.ID)
		assert.Equal(t, "Graph Traversals", a.Title)
		assert.Equal(t, assignment.StatusPending, a.Status)
		assert.Equal(t, []string{".zip", ".java"}, a.AllowedFileTypes)
		assert.True(t, due.Equal(a.DueDate))
	})

	t.Run("invalid", func(t *testing.T) {
		rec := do(app, http.MethodPost, "/v1/assignments", marchallObj(t, map[string]interface{}{
			"course_id":          "CS201",
			"course_name":        "Data Structures",
			"due_date":           due,
			"max_points":         10,
			"allowed_file_types": []string{"zip"},
		}))
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"title":                 "this field is required",
				"allowed_file_types[0]": "allowed_file_types[0] must be file extensions starting with a dot, eg. .pdf",
			}),
		}, rec)
	})
}

func TestAssignmentAPI_Update(t *testing.T) {
	app, _ := setup(t)

	rec := do(app, http.MethodPatch, "/v1/assignments/2", marchallObj(t, map[string]interface{}{
		"title":      "ER Diagram Design (revised)",
		"max_points": 60,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a assignment.Assignment
	unmarchall(t, rec, &a)
	assert.Equal(t, "ER Diagram Design (revised)", a.Title)
	assert.Equal(t, 60.0, a.MaxPoints)
	assert.Equal(t, "Database Systems", a.CourseName) // untouched
	assert.Equal(t, []string{".pdf", ".png", ".jpg"}, a.AllowedFileTypes)

	rec = do(app, http.MethodPatch, "/v1/assignments/2", marchallObj(t, map[string]interface{}{"status": "lost"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(app, http.MethodPatch, "/v1/assignments/404", marchallObj(t, map[string]interface{}{"title": "x"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignmentAPI_Destroy(t *testing.T) {
	app, _ := setup(t)

	rec := do(app, http.MethodDelete, "/v1/assignments/4")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a assignment.Assignment
	unmarchall(t, rec, &a)
	assert.Equal(t, "Projectile Motion Lab Report", a.Title)

	rec = do(app, http.MethodGet, "/v1/assignments/4")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignmentAPI_Destroy_DiscardsUpload(t *testing.T) {
	app, env := setup(t)
	na := assignment.NewAssignment{
		Title:      "Reading Notes",
		CourseID:   "ART101",
		CourseName: "Art History",
		DueDate:    env.Now().Add(48 * time.Hour),
		MaxPoints:  10,
	}
	a := testutil.CreateAssignment(t, env.Assignments, na)
	id := strconv.Itoa(a.ID)

	rec := do(app, http.MethodPost, "/v1/assignments/"+id+"/upload", marchallObj(t, upload.File{Name: "notes.pdf", Size: 1024}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(app, http.MethodDelete, "/v1/assignments/"+id)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(app, http.MethodGet, "/v1/assignments/"+id+"/upload")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	b := testutil.CreateAssignment(t, env.Assignments, na)
	require.Equal(t, a.ID, b.ID)
	snap := snapshotOf(t, app, id)
	assert.Equal(t, upload.StateNoFile, snap.State)
	assert.Nil(t, snap.File)
}

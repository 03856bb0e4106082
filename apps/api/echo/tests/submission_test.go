package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classtrack/core/submission"
)

func submissionIDs(subs []submission.Submission) []int {
	ids := make([]int, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSubmissionAPI_Query(t *testing.T) {
	app, _ := setup(t)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantIDs  []int
	}{
		{"all", "/v1/submissions", http.StatusOK, []int{1, 2, 3, 4, 5}},
		{"by assignment", "/v1/submissions?assignment=7", http.StatusOK, []int{3}},
		{"by student", "/v1/submissions?student=2", http.StatusOK, []int{}},
		{"graded", "/v1/submissions?graded=true", http.StatusOK, []int{1, 2, 4, 5}},
		{"ungraded", "/v1/submissions?graded=false", http.StatusOK, []int{3}},
		{"graded by assignment", "/v1/submissions?assignment=7&graded=true", http.StatusOK, []int{}},
		{"bad id", "/v1/submissions?assignment=seven", http.StatusBadRequest, nil},
		{"bad flag", "/v1/submissions?graded=maybe", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(app, http.MethodGet, tt.path)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantIDs == nil {
				return
			}
			var subs []submission.Submission
			unmarchall(t, rec, &subs)
			assert.Equal(t, tt.wantIDs, submissionIDs(subs))
		})
	}
}

func TestSubmissionAPI_Grade(t *testing.T) {
	app, env := setup(t)

	rec := do(app, http.MethodPatch, "/v1/submissions/3", []byte(`{"grade": 88, "feedback": "Solid <b>indexes</b>"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var s submission.Submission
	unmarchall(t, rec, &s)
	assert.True(t, s.IsGraded())
	assert.Equal(t, 88.0, s.Grade.Float64)
	assert.Equal(t, "Solid indexes", s.Feedback.String)
	assert.True(t, env.Now().Equal(s.GradedAt.Time))

	// the assignment now shows as graded
	rec = do(app, http.MethodGet, "/v1/assignments?status=graded")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"SQL Query Optimization"`)

	rec = do(app, http.MethodPatch, "/v1/submissions/3", []byte(`{"grade": -1}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmissionAPI_RetrieveAndDestroy(t *testing.T) {
	app, _ := setup(t)

	rec := do(app, http.MethodGet, "/v1/submissions/4")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var s submission.Submission
	unmarchall(t, rec, &s)
	assert.Equal(t, 9, s.AssignmentID)
	assert.Equal(t, 27.5, s.Grade.Float64)

	rec = do(app, http.MethodDelete, "/v1/submissions/4")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(app, http.MethodGet, "/v1/submissions/4")
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: "submission with id 4 not found"}),
	}, rec)
}

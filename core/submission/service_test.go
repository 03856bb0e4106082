package submission_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/classtrack/core"
	. "github.com/trezcool/classtrack/core/submission"
	"github.com/trezcool/classtrack/tests"
)

func TestService_SubmitFile(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	s, err := env.Submissions.SubmitFile(ctx, NewSubmission{
		AssignmentID: 1,
		StudentID:    1,
		StudentName:  "John Smith",
		FileName:     "bst.zip",
		FileSize:     2048,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, s.ID)
	assert.Contains(t, s.FileURL, "/bst.zip")
	assert.Equal(t, env.Now(), s.SubmittedAt)
	assert.False(t, s.IsGraded())
	assert.False(t, s.Feedback.Valid)

	subs, err := env.Submissions.GetByAssignmentID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []Submission{s}, subs)
}

func TestService_Update(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	grade, feedback := 88.0, "  Solid <i>indexes</i>. "
	us := UpdateSubmission{Grade: &grade, Feedback: &feedback}
	require.NoError(t, us.Validate(env.Validate))
	assert.Equal(t, "Solid indexes.", feedback)

	s, err := env.Submissions.Update(ctx, 3, us)
	require.NoError(t, err)
	assert.True(t, s.IsGraded())
	assert.Equal(t, 88.0, s.Grade.Float64)
	assert.Equal(t, "Solid indexes.", s.Feedback.String)
	assert.Equal(t, env.Now(), s.GradedAt.Time, "grading stamps the time")

	graded, err := env.Submissions.GetGraded(ctx)
	require.NoError(t, err)
	assert.Len(t, graded, 5)

	negative := -1.0
	us = UpdateSubmission{Grade: &negative}
	assert.Error(t, us.Validate(env.Validate))

	_, err = env.Submissions.GetByID(ctx, 404)
	assert.True(t, core.IsNotFound(err))
}

func TestNewSubmission_Validate(t *testing.T) {
	env := testutil.NewEnv(t)

	ns := NewSubmission{AssignmentID: 1, StudentID: 1, StudentName: "John Smith", FileName: " report.pdf ", FileSize: 10}
	require.NoError(t, ns.Validate(env.Validate))
	assert.Equal(t, "report.pdf", ns.FileName)

	ns = NewSubmission{}
	assert.Error(t, ns.Validate(env.Validate))
}

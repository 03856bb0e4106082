package portal

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/deadline"
	"github.com/trezcool/classtrack/core/student"
	"github.com/trezcool/classtrack/core/submission"
	"github.com/trezcool/classtrack/core/upload"
)

type (
	Requirements struct {
		AcceptedTypes    string `json:"accepted_types"`
		MaxFileSize      string `json:"max_file_size"`
		SubmissionMethod string `json:"submission_method"`
		LatePolicy       string `json:"late_policy"`
	}

	AssignmentDetail struct {
		Assignment   assignment.Assignment  `json:"assignment"`
		Status       assignment.Status      `json:"status"`
		StatusBadge  Badge                  `json:"status_badge"`
		Deadline     deadline.Reading       `json:"deadline"`
		Initials     string                 `json:"initials"`
		Requirements Requirements           `json:"requirements"`
		Submission   *submission.Submission `json:"submission"`
		CanSubmit    bool                   `json:"can_submit"`
		LockReason   string                 `json:"lock_reason,omitempty"`
		Upload       upload.Snapshot        `json:"upload"`
	}

	// assignmentContext is what the detail page and the upload workflow need to know.
	assignmentContext struct {
		assignment  assignment.Assignment
		student     student.Student
		submissions []submission.Submission // of the current student
	}
)

const (
	submissionMethod = "Single file upload via web interface"
	latePolicy       = "Submissions are automatically blocked after the deadline"
)

func newRequirements(a assignment.Assignment) Requirements {
	r := Requirements{
		AcceptedTypes:    "All file types accepted",
		MaxFileSize:      "No limit",
		SubmissionMethod: submissionMethod,
		LatePolicy:       latePolicy,
	}
	if len(a.AllowedFileTypes) > 0 {
		r.AcceptedTypes = strings.Join(a.AllowedFileTypes, ", ")
	}
	if a.MaxFileSize > 0 {
		r.MaxFileSize = FormatMB(a.MaxFileSize, 1)
	}
	return r
}

// lockReason is empty while the student may still submit.
func lockReason(a assignment.Assignment, subs []submission.Submission, now time.Time) string {
	switch {
	case len(subs) > 0:
		return upload.ReasonAlreadySubmitted
	case a.IsPastDue(now):
		return upload.ReasonDeadlinePassed
	default:
		return ""
	}
}

func (p *Portal) loadAssignment(ctx context.Context, id int) (assignmentContext, error) {
	a, err := p.opts.Assignments.GetByID(ctx, id)
	if err != nil {
		return assignmentContext{}, errors.Wrap(err, "getting assignment")
	}
	stud, err := p.opts.Students.GetCurrent(ctx)
	if err != nil {
		return assignmentContext{}, errors.Wrap(err, "getting current student")
	}
	all, err := p.opts.Submissions.GetByAssignmentID(ctx, id)
	if err != nil {
		return assignmentContext{}, errors.Wrap(err, "querying submissions")
	}

	subs := make([]submission.Submission, 0, len(all))
	for _, s := range all {
		if s.StudentID == stud.ID {
			subs = append(subs, s)
		}
	}
	return assignmentContext{assignment: a, student: stud, submissions: subs}, nil
}

func (p *Portal) AssignmentDetail(ctx context.Context, id int) (AssignmentDetail, error) {
	ac, err := p.loadAssignment(ctx, id)
	if err != nil {
		return AssignmentDetail{}, err
	}

	now := p.now()
	a := ac.assignment
	status := DeriveStatus(a, ac.submissions, now)
	reason := lockReason(a, ac.submissions, now)

	detail := AssignmentDetail{
		Assignment:   a,
		Status:       status,
		StatusBadge:  StatusBadge(status),
		Deadline:     deadline.Read(a.DueDate, now),
		Initials:     Initials(a.CourseName),
		Requirements: newRequirements(a),
		CanSubmit:    reason == "",
		LockReason:   reason,
		Upload:       p.workflowFor(ac, reason).Snapshot(),
	}
	if len(ac.submissions) > 0 {
		first := ac.submissions[0]
		detail.Submission = &first
	}
	return detail, nil
}

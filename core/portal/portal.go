// Package portal builds the view models of the student portal pages and runs the page actions.
package portal

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/deadline"
	"github.com/trezcool/classtrack/core/notification"
	"github.com/trezcool/classtrack/core/schedule"
	"github.com/trezcool/classtrack/core/student"
	"github.com/trezcool/classtrack/core/submission"
	"github.com/trezcool/classtrack/core/upload"
)

type (
	// GradesExporter writes grade cards as a spreadsheet.
	GradesExporter interface {
		ExportGrades(w io.Writer, cards []GradeCard) error
	}

	Options struct {
		Assignments   *assignment.Service
		Submissions   *submission.Service
		Students      *student.Service
		Notifications *notification.Service

		Clock     core.Clock
		Scheduler schedule.Scheduler
		Mailer    core.EmailService
		Exporter  GradesExporter
		Logger    core.Logger

		Upload         core.UploadConfig
		UpcomingWindow time.Duration
	}

	Portal struct {
		opts Options

		mu        sync.Mutex
		workflows map[int]*upload.Workflow // by assignment ID
	}
)

func NewPortal(opts Options) *Portal {
	if opts.Clock == nil {
		opts.Clock = core.SystemClock()
	}
	if opts.UpcomingWindow <= 0 {
		opts.UpcomingWindow = assignment.UpcomingWindow
	}
	return &Portal{opts: opts, workflows: make(map[int]*upload.Workflow)}
}

// Close cancels the scheduled jobs of every upload workflow.
func (p *Portal) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, w := range p.workflows {
		w.Close()
	}
}

// DeleteAssignment removes the assignment and discards its upload workflow,
// so an assignment created later under the same ID starts from a clean slate.
func (p *Portal) DeleteAssignment(ctx context.Context, id int) (assignment.Assignment, error) {
	a, err := p.opts.Assignments.Delete(ctx, id)
	if err != nil {
		return assignment.Assignment{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if w, ok := p.workflows[id]; ok {
		w.Close()
		delete(p.workflows, id)
	}
	return a, nil
}

func (p *Portal) now() time.Time {
	return p.opts.Clock.Now()
}

// DeriveStatus tells where an assignment stands for the student:
// graded, else submitted, else overdue once past due, else pending.
func DeriveStatus(a assignment.Assignment, subs []submission.Submission, now time.Time) assignment.Status {
	if len(subs) > 0 {
		for _, s := range subs {
			if s.IsGraded() {
				return assignment.StatusGraded
			}
		}
		return assignment.StatusSubmitted
	}
	if a.IsPastDue(now) {
		return assignment.StatusOverdue
	}
	return assignment.StatusPending
}

// submissionsByAssignment groups the submissions of the current student.
func (p *Portal) submissionsByAssignment(ctx context.Context, studentID int) (map[int][]submission.Submission, error) {
	subs, err := p.opts.Submissions.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	byAssignment := make(map[int][]submission.Submission, len(subs))
	for _, s := range subs {
		byAssignment[s.AssignmentID] = append(byAssignment[s.AssignmentID], s)
	}
	return byAssignment, nil
}

// AssignmentCard is an assignment as listed on the dashboard and the assignments page.
type AssignmentCard struct {
	assignment.Assignment
	DerivedStatus assignment.Status `json:"derived_status"`
	StatusBadge   Badge             `json:"status_badge"`
	Initials      string            `json:"initials"`
	Deadline      deadline.Reading  `json:"deadline"`
	Accepts       string            `json:"accepts"`
	Action        string            `json:"action"`
}

func newAssignmentCard(a assignment.Assignment, status assignment.Status, now time.Time) AssignmentCard {
	card := AssignmentCard{
		Assignment:    a,
		DerivedStatus: status,
		StatusBadge:   StatusBadge(status),
		Initials:      Initials(a.CourseName),
		Deadline:      deadline.Read(a.DueDate, now),
		Action:        "Submit Work",
	}
	if a.IsPastDue(now) {
		card.Action = "View Details"
	}

	types := a.AllowedFileTypes
	if len(types) > 2 {
		card.Accepts = types[0] + ", " + types[1] + "..."
	} else {
		for i, t := range types {
			if i > 0 {
				card.Accepts += ", "
			}
			card.Accepts += t
		}
	}
	return card
}

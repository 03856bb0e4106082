package submission

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/classtrack/core"
)

type (
	Repository interface {
		QueryAll(ctx context.Context) ([]Submission, error)
		QueryByAssignmentID(ctx context.Context, assignmentID int) ([]Submission, error)
		QueryByStudentID(ctx context.Context, studentID int) ([]Submission, error)
		QueryGraded(ctx context.Context) ([]Submission, error)
		GetByID(ctx context.Context, id int) (Submission, error)
		Create(ctx context.Context, s Submission) (Submission, error)
		Update(ctx context.Context, id int, us UpdateSubmission) (Submission, error)
		Delete(ctx context.Context, id int) (Submission, error)
		// StoreFile simulates storing an uploaded file and returns its public URL.
		StoreFile(ctx context.Context, fileName string) (string, error)
	}

	Service struct {
		repo  Repository
		clock core.Clock
	}
)

func NewService(repo Repository, clock core.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

func (svc *Service) GetAll(ctx context.Context) ([]Submission, error) {
	return svc.repo.QueryAll(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Submission, error) {
	return svc.repo.GetByID(ctx, id)
}

func (svc *Service) GetByAssignmentID(ctx context.Context, assignmentID int) ([]Submission, error) {
	return svc.repo.QueryByAssignmentID(ctx, assignmentID)
}

func (svc *Service) GetByStudentID(ctx context.Context, studentID int) ([]Submission, error) {
	return svc.repo.QueryByStudentID(ctx, studentID)
}

func (svc *Service) GetGraded(ctx context.Context) ([]Submission, error) {
	return svc.repo.QueryGraded(ctx)
}

// Create records a new, ungraded Submission stamped with the current time.
func (svc *Service) Create(ctx context.Context, ns NewSubmission) (Submission, error) {
	s := Submission{
		AssignmentID: ns.AssignmentID,
		StudentID:    ns.StudentID,
		StudentName:  ns.StudentName,
		FileName:     ns.FileName,
		FileURL:      ns.FileURL,
		FileSize:     ns.FileSize,
		SubmittedAt:  svc.clock.Now().UTC(),
		Grade:        null.Float64{},
		Feedback:     null.String{},
		GradedAt:     null.Time{},
	}
	return svc.repo.Create(ctx, s)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateSubmission) (Submission, error) {
	if us.Grade != nil && us.GradedAt == nil {
		now := svc.clock.Now().UTC()
		us.GradedAt = &now
	}
	return svc.repo.Update(ctx, id, us)
}

func (svc *Service) Delete(ctx context.Context, id int) (Submission, error) {
	return svc.repo.Delete(ctx, id)
}

// SubmitFile stores the file then records the Submission pointing to it.
func (svc *Service) SubmitFile(ctx context.Context, ns NewSubmission) (Submission, error) {
	url, err := svc.repo.StoreFile(ctx, ns.FileName)
	if err != nil {
		return Submission{}, errors.Wrap(err, "storing file")
	}
	ns.FileURL = url

	s, err := svc.Create(ctx, ns)
	if err != nil {
		return Submission{}, errors.Wrap(err, "creating submission")
	}
	return s, nil
}

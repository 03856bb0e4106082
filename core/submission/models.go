package submission

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/classtrack/core"
)

const Resource = "submission"

type Submission struct {
	ID           int          `json:"id"`
	AssignmentID int          `json:"assignment_id"`
	StudentID    int          `json:"student_id"`
	StudentName  string       `json:"student_name"`
	FileName     string       `json:"file_name"`
	FileURL      string       `json:"file_url"`
	FileSize     int64        `json:"file_size"`
	SubmittedAt  time.Time    `json:"submitted_at"`
	Grade        null.Float64 `json:"grade"`
	Feedback     null.String  `json:"feedback"`
	GradedAt     null.Time    `json:"graded_at"`
}

func (s Submission) IsGraded() bool {
	return s.Grade.Valid
}

// NewSubmission contains information needed to create a new Submission.
type NewSubmission struct {
	AssignmentID int    `json:"assignment_id" validate:"required,gt=0"`
	StudentID    int    `json:"student_id" validate:"required,gt=0"`
	StudentName  string `json:"student_name" validate:"required"`
	FileName     string `json:"file_name" validate:"required"`
	FileURL      string `json:"file_url"`
	FileSize     int64  `json:"file_size" validate:"gte=0"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.StudentName = core.CleanText(ns.StudentName)
	ns.FileName = core.CleanString(ns.FileName)
	ns.FileURL = core.CleanString(ns.FileURL)
	return validate.Struct(ns)
}

// UpdateSubmission defines what information may be provided to modify an existing Submission.
// Setting Grade without GradedAt stamps the grading time.
type UpdateSubmission struct {
	FileName *string    `json:"file_name" validate:"omitempty,min=1"`
	FileURL  *string    `json:"file_url"`
	FileSize *int64     `json:"file_size" validate:"omitempty,gte=0"`
	Grade    *float64   `json:"grade" validate:"omitempty,gte=0"`
	Feedback *string    `json:"feedback"`
	GradedAt *time.Time `json:"graded_at"`
}

func (us *UpdateSubmission) Validate(validate *validator.Validate) error {
	if us.FileName != nil {
		*us.FileName = core.CleanString(*us.FileName)
	}
	if us.Feedback != nil {
		*us.Feedback = core.CleanText(*us.Feedback)
	}
	return validate.Struct(us)
}

// Apply merges the set fields into s.
func (us UpdateSubmission) Apply(s *Submission) {
	if us.FileName != nil {
		s.FileName = *us.FileName
	}
	if us.FileURL != nil {
		s.FileURL = *us.FileURL
	}
	if us.FileSize != nil {
		s.FileSize = *us.FileSize
	}
	if us.Grade != nil {
		s.Grade = null.Float64From(*us.Grade)
	}
	if us.Feedback != nil {
		s.Feedback = null.StringFrom(*us.Feedback)
	}
	if us.GradedAt != nil {
		s.GradedAt = null.TimeFrom(us.GradedAt.UTC())
	}
}

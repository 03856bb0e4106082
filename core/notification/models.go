package notification

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classtrack/core"
)

const Resource = "notification"

type Type string

// Types
const (
	TypeNewSubmission  Type = "new_submission"
	TypeLateSubmission Type = "late_submission"
	TypeGradePosted    Type = "grade_posted"
)

var Types = []Type{TypeNewSubmission, TypeLateSubmission, TypeGradePosted}

type Notification struct {
	ID              int       `json:"id"`
	Type            Type      `json:"type"`
	AssignmentTitle string    `json:"assignment_title"`
	StudentName     string    `json:"student_name"`
	Timestamp       time.Time `json:"timestamp"`
	Read            bool      `json:"read"`
}

// NewNotification contains information needed to create a new Notification.
type NewNotification struct {
	Type            Type   `json:"type" validate:"required,oneof=new_submission late_submission grade_posted"`
	AssignmentTitle string `json:"assignment_title" validate:"required"`
	StudentName     string `json:"student_name" validate:"required"`
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.AssignmentTitle = core.CleanText(nn.AssignmentTitle)
	nn.StudentName = core.CleanText(nn.StudentName)
	return validate.Struct(nn)
}

// UpdateNotification defines what information may be provided to modify an existing Notification.
// nil fields are left untouched.
type UpdateNotification struct {
	Type            *Type   `json:"type" validate:"omitempty,oneof=new_submission late_submission grade_posted"`
	AssignmentTitle *string `json:"assignment_title" validate:"omitempty,min=1"`
	StudentName     *string `json:"student_name" validate:"omitempty,min=1"`
	Read            *bool   `json:"read"`
}

func (un *UpdateNotification) Validate(validate *validator.Validate) error {
	if un.AssignmentTitle != nil {
		*un.AssignmentTitle = core.CleanText(*un.AssignmentTitle)
	}
	if un.StudentName != nil {
		*un.StudentName = core.CleanText(*un.StudentName)
	}
	return validate.Struct(un)
}

// Apply merges the set fields into n.
func (un UpdateNotification) Apply(n *Notification) {
	if un.Type != nil {
		n.Type = *un.Type
	}
	if un.AssignmentTitle != nil {
		n.AssignmentTitle = *un.AssignmentTitle
	}
	if un.StudentName != nil {
		n.StudentName = *un.StudentName
	}
	if un.Read != nil {
		n.Read = *un.Read
	}
}

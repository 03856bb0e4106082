package student

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classtrack/core"
)

// Resource names Students in errors.
const Resource = "student"

type Student struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	OverallGrade   float64 `json:"overall_grade"`   // percentage
	CompletionRate float64 `json:"completion_rate"` // percentage
}

// FirstName returns the first word of the Student's name.
func (s Student) FirstName() string {
	if fields := strings.Fields(s.Name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	OverallGrade   float64 `json:"overall_grade" validate:"gte=0,lte=100"`
	CompletionRate float64 `json:"completion_rate" validate:"gte=0,lte=100"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanText(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// nil fields are left untouched.
type UpdateStudent struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
	UpdateProgress
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	if us.Name != nil {
		*us.Name = core.CleanText(*us.Name)
	}
	if us.Email != nil {
		*us.Email = core.CleanString(*us.Email, true /* lower */)
	}
	return validate.Struct(us)
}

// Apply merges the set fields into s.
func (us UpdateStudent) Apply(s *Student) {
	if us.Name != nil {
		s.Name = *us.Name
	}
	if us.Email != nil {
		s.Email = *us.Email
	}
	us.UpdateProgress.Apply(s)
}

// UpdateProgress defines the progress figures that may be modified on a Student.
type UpdateProgress struct {
	OverallGrade   *float64 `json:"overall_grade" validate:"omitempty,gte=0,lte=100"`
	CompletionRate *float64 `json:"completion_rate" validate:"omitempty,gte=0,lte=100"`
}

func (up *UpdateProgress) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

// Apply merges the set fields into s.
func (up UpdateProgress) Apply(s *Student) {
	if up.OverallGrade != nil {
		s.OverallGrade = *up.OverallGrade
	}
	if up.CompletionRate != nil {
		s.CompletionRate = *up.CompletionRate
	}
}

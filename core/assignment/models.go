package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/classtrack/core"
)

type Status string

// Statuses
const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusOverdue   Status = "overdue"
	StatusGraded    Status = "graded"
)

var Statuses = []Status{StatusPending, StatusSubmitted, StatusOverdue, StatusGraded}

// Resource names Assignments in errors.
const Resource = "assignment"

type Assignment struct {
	ID               int       `json:"id"`
	Title            string    `json:"title"`
	CourseID         string    `json:"course_id"`
	CourseName       string    `json:"course_name"`
	Description      string    `json:"description"`
	DueDate          time.Time `json:"due_date"` // UTC
	MaxPoints        float64   `json:"max_points"`
	AllowedFileTypes []string  `json:"allowed_file_types"`
	MaxFileSize      int64     `json:"max_file_size"` // bytes; 0 means no limit
	// Status is informational only. Views use a status derived from submissions and the due date.
	Status Status `json:"status"`
}

// IsPastDue reports whether the deadline is strictly before now.
func (a Assignment) IsPastDue(now time.Time) bool {
	return a.DueDate.Before(now)
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title            string    `json:"title" validate:"required"`
	CourseID         string    `json:"course_id" validate:"required"`
	CourseName       string    `json:"course_name" validate:"required"`
	Description      string    `json:"description"`
	DueDate          time.Time `json:"due_date" validate:"required"`
	MaxPoints        float64   `json:"max_points" validate:"gt=0"`
	AllowedFileTypes []string  `json:"allowed_file_types" validate:"omitempty,dive,fileext"`
	MaxFileSize      int64     `json:"max_file_size" validate:"gte=0"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanText(na.Title)
	na.CourseID = core.CleanString(na.CourseID)
	na.CourseName = core.CleanText(na.CourseName)
	na.Description = core.CleanText(na.Description)
	na.AllowedFileTypes = cleanFileTypes(na.AllowedFileTypes)
	na.DueDate = na.DueDate.UTC()
	return validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
// nil fields are left untouched.
type UpdateAssignment struct {
	Title            *string    `json:"title" validate:"omitempty,min=1"`
	CourseID         *string    `json:"course_id" validate:"omitempty,min=1"`
	CourseName       *string    `json:"course_name" validate:"omitempty,min=1"`
	Description      *string    `json:"description"`
	DueDate          *time.Time `json:"due_date"`
	MaxPoints        *float64   `json:"max_points" validate:"omitempty,gt=0"`
	AllowedFileTypes []string   `json:"allowed_file_types" validate:"omitempty,dive,fileext"`
	MaxFileSize      *int64     `json:"max_file_size" validate:"omitempty,gte=0"`
	Status           *Status    `json:"status" validate:"omitempty,oneof=pending submitted overdue graded"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	cleanPtr := func(s *string, clean func(string) string) {
		if s != nil {
			*s = clean(*s)
		}
	}
	cleanPtr(ua.Title, core.CleanText)
	cleanPtr(ua.CourseID, func(s string) string { return core.CleanString(s) })
	cleanPtr(ua.CourseName, core.CleanText)
	cleanPtr(ua.Description, core.CleanText)
	if ua.AllowedFileTypes != nil {
		ua.AllowedFileTypes = cleanFileTypes(ua.AllowedFileTypes)
	}
	if ua.DueDate != nil {
		utc := ua.DueDate.UTC()
		ua.DueDate = &utc
	}
	return validate.Struct(ua)
}

// Apply merges the set fields into a.
func (ua UpdateAssignment) Apply(a *Assignment) {
	if ua.Title != nil {
		a.Title = *ua.Title
	}
	if ua.CourseID != nil {
		a.CourseID = *ua.CourseID
	}
	if ua.CourseName != nil {
		a.CourseName = *ua.CourseName
	}
	if ua.Description != nil {
		a.Description = *ua.Description
	}
	if ua.DueDate != nil {
		a.DueDate = *ua.DueDate
	}
	if ua.MaxPoints != nil {
		a.MaxPoints = *ua.MaxPoints
	}
	if ua.AllowedFileTypes != nil {
		a.AllowedFileTypes = append([]string(nil), ua.AllowedFileTypes...)
	}
	if ua.MaxFileSize != nil {
		a.MaxFileSize = *ua.MaxFileSize
	}
	if ua.Status != nil {
		a.Status = *ua.Status
	}
}

func cleanFileTypes(types []string) []string {
	cleaned := make([]string, 0, len(types))
	for _, t := range types {
		cleaned = append(cleaned, core.CleanString(t, true /* lower */))
	}
	return cleaned
}

package upload

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/trezcool/classtrack/core"
)

const mb = 1024 * 1024

// File is a file picked by the student. Only its metadata is ever used.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"` // bytes
}

// Ext returns the lower-cased extension of the file name, with its leading dot.
func (f File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// SizeMB formats the size in megabytes with two decimals, eg. "1.19".
func (f File) SizeMB() string {
	return fmt.Sprintf("%.2f", float64(f.Size)/mb)
}

// Rules restrict the files accepted for an assignment.
// No allowed types means any type; a zero MaxSize means no limit.
type Rules struct {
	AllowedTypes []string
	MaxSize      int64
}

// FormatMB formats a byte count in megabytes without trailing zeros, eg. 5242880 -> "5".
func FormatMB(size int64) string {
	return strconv.FormatFloat(float64(size)/mb, 'f', -1, 64)
}

func (r Rules) allows(ext string) bool {
	if len(r.AllowedTypes) == 0 {
		return true
	}
	for _, t := range r.AllowedTypes {
		if strings.EqualFold(t, ext) {
			return true
		}
	}
	return false
}

// Validate checks the file type and size. Both checks always run; every failure is reported.
func Validate(f File, rules Rules) error {
	var flds []core.FieldError
	if !rules.allows(f.Ext()) {
		flds = append(flds, core.FieldError{
			Field: "file_type",
			Error: "File type not allowed. Accepted types: " + strings.Join(rules.AllowedTypes, ", "),
		})
	}
	switch {
	case f.Size < 0:
		flds = append(flds, core.FieldError{
			Field: "file_size",
			Error: "File size cannot be negative",
		})
	case rules.MaxSize > 0 && f.Size > rules.MaxSize:
		flds = append(flds, core.FieldError{
			Field: "file_size",
			Error: "File size must be less than " + FormatMB(rules.MaxSize) + "MB",
		})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

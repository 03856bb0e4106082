package echoapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/upload"
)

const fileField = "file"

// idParam reads the `:id` path param. A non-integer identifier cannot match any record.
func idParam(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// bindFile reads the picked file from the multipart `file` field,
// or from a JSON body carrying its name & size.
// The content itself is never read.
func bindFile(ctx echo.Context) (upload.File, error) {
	if strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		fh, err := ctx.FormFile(fileField)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return upload.File{}, missingFileErr()
			}
			return upload.File{}, errors.Wrap(err, "reading multipart file")
		}
		return upload.File{Name: fh.Filename, Size: fh.Size}, nil
	}

	var f upload.File
	if err := ctx.Bind(&f); err != nil {
		return upload.File{}, errors.Wrap(err, "binding to File")
	}
	if strings.TrimSpace(f.Name) == "" {
		return upload.File{}, missingFileErr()
	}
	return f, nil
}

func missingFileErr() error {
	return core.NewValidationError(nil, core.FieldError{Field: fileField, Error: "this field is required"})
}

// SubmissionsQuery narrows the submissions list. Zero values are ignored.
type SubmissionsQuery struct {
	AssignmentID int
	StudentID    int
	Graded       *bool
}

func (q *SubmissionsQuery) Bind(ctx echo.Context) error {
	var graded string
	err := echo.QueryParamsBinder(ctx).
		Int("assignment", &q.AssignmentID).
		Int("student", &q.StudentID).
		String("graded", &graded).
		BindError()
	if err != nil {
		return core.NewValidationError(errors.New("invalid query parameters"))
	}
	if graded != "" {
		b, err := strconv.ParseBool(graded)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "graded", Error: "graded must be a boolean"})
		}
		q.Graded = &b
	}
	return nil
}

package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/submission"
)

type submissionApi struct {
	svc      *submission.Service
	validate *validator.Validate
}

func registerSubmissionAPI(g *echo.Group, svc *submission.Service, validate *validator.Validate) {
	api := submissionApi{
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/submissions")
	sg.GET("", api.query)

	// detail endpoints
	sg.GET("/:id", api.retrieve)
	sg.PATCH("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

// querySubmissions fetches through the narrowest service query, then applies the other filters.
func querySubmissions(ctx context.Context, svc *submission.Service, q SubmissionsQuery) ([]submission.Submission, error) {
	var subs []submission.Submission
	var err error
	switch {
	case q.AssignmentID > 0:
		subs, err = svc.GetByAssignmentID(ctx, q.AssignmentID)
	case q.StudentID > 0:
		subs, err = svc.GetByStudentID(ctx, q.StudentID)
	case q.Graded != nil && *q.Graded:
		subs, err = svc.GetGraded(ctx)
	default:
		subs, err = svc.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	filtered := make([]submission.Submission, 0, len(subs))
	for _, s := range subs {
		if q.AssignmentID > 0 && s.AssignmentID != q.AssignmentID {
			continue
		}
		if q.StudentID > 0 && s.StudentID != q.StudentID {
			continue
		}
		if q.Graded != nil && s.IsGraded() != *q.Graded {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered, nil
}

// Handlers

func (api *submissionApi) query(ctx echo.Context) error {
	var q SubmissionsQuery
	if err := q.Bind(ctx); err != nil {
		return err
	}

	subs, err := querySubmissions(ctx.Request().Context(), api.svc, q)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *submissionApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	s, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting submission")
	}
	return ctx.JSON(http.StatusOK, s)
}

// update is used to grade a submission.
func (api *submissionApi) update(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	var data submission.UpdateSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubmission")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating submission")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *submissionApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	s, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting submission")
	}
	return ctx.JSON(http.StatusOK, s)
}

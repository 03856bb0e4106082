package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/assignment"
	"github.com/trezcool/classtrack/core/portal"
)

type assignmentApi struct {
	portal   *portal.Portal
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, p *portal.Portal, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{
		portal:   p,
		svc:      svc,
		validate: validate,
	}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)

	// detail endpoints
	ag.GET("/:id", api.retrieve)
	ag.PATCH("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *assignmentApi) query(ctx echo.Context) error {
	var q portal.AssignmentsQuery
	if err := ctx.Bind(&q); err != nil {
		return errors.Wrap(err, "binding to AssignmentsQuery")
	}

	page, err := api.portal.Assignments(ctx.Request().Context(), q)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	detail, err := api.portal.AssignmentDetail(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting assignment detail")
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	a, err := api.portal.DeleteAssignment(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

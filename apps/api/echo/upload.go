package echoapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/classtrack/core"
	"github.com/trezcool/classtrack/core/portal"
)

type uploadApi struct {
	portal  *portal.Portal
	logger  core.Logger
	metrics *metrics
}

// registerUploadAPI exposes the submission workflow of each assignment.
// Workflow errors are returned as is: their message carries the lock reason or the current state.
func registerUploadAPI(g *echo.Group, p *portal.Portal, logger core.Logger, m *metrics) {
	api := uploadApi{
		portal:  p,
		logger:  logger,
		metrics: m,
	}

	ug := g.Group("/assignments/:id/upload")
	ug.GET("", api.status)
	ug.POST("", api.stage)
	ug.DELETE("", api.remove)
	ug.POST("/request", api.request)
	ug.POST("/cancel", api.cancel)
	ug.POST("/confirm", api.confirm)
	ug.POST("/reset", api.reset)
}

// Handlers

func (api *uploadApi) status(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	snap, err := api.portal.UploadStatus(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *uploadApi) stage(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	file, err := bindFile(ctx)
	if err != nil {
		return err
	}
	snap, err := api.portal.StageFile(ctx.Request().Context(), id, file)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *uploadApi) remove(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	snap, err := api.portal.RemoveFile(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *uploadApi) request(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	prompt, err := api.portal.RequestUpload(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prompt)
}

func (api *uploadApi) cancel(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	snap, err := api.portal.CancelUpload(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

// confirm starts the upload and answers right away. The client polls the status until
// the workflow is submitted or failed.
func (api *uploadApi) confirm(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	// the upload outlives the request
	uploadCtx := context.WithoutCancel(ctx.Request().Context())
	snap, done, err := api.portal.StartUpload(uploadCtx, id)
	if err != nil {
		return err
	}
	api.metrics.submission(outcomeStarted)

	go func() {
		if err := <-done; err != nil {
			api.metrics.submission(outcomeFailed)
			api.logger.Warn(fmt.Sprintf("uploading submission for assignment %d: %v", id, err), err)
			return
		}
		api.metrics.submission(outcomeSucceeded)
	}()

	return ctx.JSON(http.StatusAccepted, snap)
}

func (api *uploadApi) reset(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	snap, err := api.portal.ResetUpload(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snap)
}

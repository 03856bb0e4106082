package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/notification"
	"github.com/trezcool/classtrack/core/portal"
)

type notificationApi struct {
	portal   *portal.Portal
	svc      *notification.Service
	validate *validator.Validate
}

type markAllReadResponse struct {
	Marked int `json:"marked"`
}

func registerNotificationAPI(g *echo.Group, p *portal.Portal, svc *notification.Service, validate *validator.Validate) {
	api := notificationApi{
		portal:   p,
		svc:      svc,
		validate: validate,
	}

	ng := g.Group("/notifications")
	ng.GET("", api.query)
	ng.POST("", api.create)
	ng.PUT("/read", api.markAllRead)

	// detail endpoints
	ng.PATCH("/:id", api.update)
	ng.DELETE("/:id", api.destroy)
	ng.PUT("/:id/read", api.markRead)
}

// Handlers

func (api *notificationApi) query(ctx echo.Context) error {
	page, err := api.portal.Notifications(ctx.Request().Context(), ctx.QueryParam("filter"))
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *notificationApi) create(ctx echo.Context) error {
	var data notification.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating notification")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	item, err := api.portal.MarkNotificationRead(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, item)
}

func (api *notificationApi) markAllRead(ctx echo.Context) error {
	n, err := api.portal.MarkAllNotificationsRead(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, markAllReadResponse{Marked: n})
}

func (api *notificationApi) update(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	var data notification.UpdateNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNotification")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating notification")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *notificationApi) destroy(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	n, err := api.svc.Delete(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "deleting notification")
	}
	return ctx.JSON(http.StatusOK, n)
}

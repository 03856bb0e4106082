package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/portal"
)

type portalApi struct {
	portal *portal.Portal
}

func registerPortalAPI(g *echo.Group, p *portal.Portal) {
	api := portalApi{portal: p}

	g.GET("/dashboard", api.dashboard)
	g.GET("/progress", api.progress)
}

// Handlers

func (api *portalApi) dashboard(ctx echo.Context) error {
	page, err := api.portal.Dashboard(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building dashboard")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *portalApi) progress(ctx echo.Context) error {
	page, err := api.portal.Progress(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building progress")
	}
	return ctx.JSON(http.StatusOK, page)
}

package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classtrack/core/portal"
)

const (
	mimeXLSX       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFileName = "grades.xlsx"
)

type gradeApi struct {
	portal *portal.Portal
}

func registerGradeAPI(g *echo.Group, p *portal.Portal) {
	api := gradeApi{portal: p}

	gg := g.Group("/grades")
	gg.GET("", api.query)
	gg.GET("/export", api.export)
}

// Handlers

func (api *gradeApi) query(ctx echo.Context) error {
	var q portal.GradesQuery
	if err := ctx.Bind(&q); err != nil {
		return errors.Wrap(err, "binding to GradesQuery")
	}

	page, err := api.portal.Grades(ctx.Request().Context(), q)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	return ctx.JSON(http.StatusOK, page)
}

// export sends the filtered grades as a spreadsheet attachment.
func (api *gradeApi) export(ctx echo.Context) error {
	var q portal.GradesQuery
	if err := ctx.Bind(&q); err != nil {
		return errors.Wrap(err, "binding to GradesQuery")
	}

	var buf bytes.Buffer
	if err := api.portal.ExportGrades(ctx.Request().Context(), q, &buf); err != nil {
		return errors.Wrap(err, "exporting grades")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exportFileName))
	return ctx.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/calendar"
	"github.com/trezcool/taskademic/core/plan"
)

type calendarApi struct {
	svc calendar.Service
}

func registerCalendarAPI(g *echo.Group, jwt, ents echo.MiddlewareFunc, deps ServerDeps) {
	api := calendarApi{svc: deps.CalendarSvc}

	g.GET("/calendar", api.month, jwt, ents)
	g.GET("/stats/focus", api.focus, jwt, ents, featureMiddleware(plan.FeaturePerformanceCharts))
}

// month defaults to the current month.
func (api *calendarApi) month(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	today := core.Today()
	year, err := queryInt(ctx, "year", today.Year)
	if err != nil {
		return err
	}
	month, err := queryInt(ctx, "month", int(today.Month))
	if err != nil {
		return err
	}

	m, err := api.svc.Month(ctx.Request().Context(), owner, year, time.Month(month))
	if err != nil {
		return errors.Wrap(err, "building month")
	}
	return ctx.JSON(http.StatusOK, m)
}

// focus defaults to the last 7 days.
func (api *calendarApi) focus(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	from, err := queryDate(ctx, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(ctx, "to")
	if err != nil {
		return err
	}
	if to.IsZero() {
		to = core.Today()
	}
	if from.IsZero() {
		from = to.AddDays(-6)
	}

	days, err := api.svc.Focus(ctx.Request().Context(), owner, from, to)
	if err != nil {
		return errors.Wrap(err, "building focus chart")
	}
	return ctx.JSON(http.StatusOK, days)
}

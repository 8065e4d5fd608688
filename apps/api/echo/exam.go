package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/exam"
	"github.com/trezcool/taskademic/core/studyplan"
	"github.com/trezcool/taskademic/services/metrics"
)

type examApi struct {
	svc          exam.Service
	studyPlanSvc studyplan.Service
	validate     *validator.Validate
}

func registerExamAPI(g *echo.Group, jwt, ents echo.MiddlewareFunc, deps ServerDeps) {
	api := examApi{svc: deps.ExamSvc, studyPlanSvc: deps.StudyPlanSvc, validate: deps.Validate}

	eg := g.Group("/exam-plans", jwt, ents)
	eg.POST("", api.create)
	eg.GET("", api.query)
	eg.GET("/projections", api.projections)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

func (api *examApi) create(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	var data exam.NewPlan
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPlan")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), owner, data)
	if err != nil {
		return errors.Wrap(err, "creating exam plan")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *examApi) query(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	plans, err := api.svc.Query(ctx.Request().Context(), owner)
	if err != nil {
		return errors.Wrap(err, "querying exam plans")
	}
	if plans == nil {
		plans = []exam.Plan{}
	}
	return ctx.JSON(http.StatusOK, plans)
}

// projections projects every exam plan as of `today`, the server's date unless provided.
func (api *examApi) projections(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	today, err := queryDate(ctx, "today")
	if err != nil {
		return err
	}
	if today.IsZero() {
		today = core.Today()
	}

	projs, err := api.studyPlanSvc.Projections(ctx.Request().Context(), owner, today)
	if err != nil {
		return errors.Wrap(err, "projecting exam plans")
	}
	metrics.ProjectionsServed(len(projs))
	return ctx.JSON(http.StatusOK, projs)
}

func (api *examApi) retrieve(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.Get(ctx.Request().Context(), owner, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding exam plan")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *examApi) update(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	var data exam.UpdatePlan
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePlan")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Request().Context(), owner, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating exam plan")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *examApi) destroy(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), owner, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting exam plan")
	}
	return ctx.NoContent(http.StatusNoContent)
}

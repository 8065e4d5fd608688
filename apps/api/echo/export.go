package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/services/export"
)

type exportApi struct {
	taskSvc    task.Service
	sessionSvc pomodoro.Service
	courseSvc  course.Service
}

func registerExportAPI(g *echo.Group, jwt, ents echo.MiddlewareFunc, deps ServerDeps) {
	api := exportApi{taskSvc: deps.TaskSvc, sessionSvc: deps.SessionSvc, courseSvc: deps.CourseSvc}

	xg := g.Group("/export", jwt, ents, featureMiddleware(plan.FeatureExport))
	xg.GET("/tasks.xlsx", api.tasks)
}

func (api *exportApi) tasks(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	tasks, err := api.taskSvc.Query(reqCtx, owner, &task.QueryFilter{}, nil)
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	sessions, err := api.sessionSvc.Query(reqCtx, owner, &pomodoro.QueryFilter{})
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	courses, err := api.courseSvc.Query(reqCtx, owner, &course.QueryFilter{}, nil)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	data, err := export.Workbook(tasks, sessions, courses)
	if err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="tasks.xlsx"`)
	return ctx.Blob(http.StatusOK, export.ContentType, data)
}

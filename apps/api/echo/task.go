package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core/task"
)

type taskApi struct {
	svc      task.Service
	validate *validator.Validate
}

func registerTaskAPI(g *echo.Group, jwt, ents echo.MiddlewareFunc, deps ServerDeps) {
	api := taskApi{svc: deps.TaskSvc, validate: deps.Validate}

	tg := g.Group("/tasks", jwt, ents)
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.POST("/:id/toggle", api.toggle)
	tg.DELETE("/:id", api.destroy)
}

func (api *taskApi) create(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	var data task.NewTask
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.Create(ctx.Request().Context(), owner, data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *taskApi) query(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	filter := new(task.QueryFilter)
	if err = ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []task.Task{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	tasks, err := api.svc.Query(ctx.Request().Context(), owner, filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *taskApi) retrieve(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	t, err := api.svc.Get(ctx.Request().Context(), owner, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) update(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	var data task.UpdateTask
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.Update(ctx.Request().Context(), owner, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) toggle(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	t, err := api.svc.Toggle(ctx.Request().Context(), owner, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "toggling task")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *taskApi) destroy(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), owner, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.NoContent(http.StatusNoContent)
}

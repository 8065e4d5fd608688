package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core/pomodoro"
)

type sessionApi struct {
	svc      pomodoro.Service
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, jwt, ents echo.MiddlewareFunc, deps ServerDeps) {
	api := sessionApi{svc: deps.SessionSvc, validate: deps.Validate}

	sg := g.Group("/sessions", jwt, ents)
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.DELETE("/:id", api.destroy)
}

func (api *sessionApi) create(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	var data pomodoro.NewSession
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Create(ctx.Request().Context(), owner, data)
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *sessionApi) query(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	filter := new(pomodoro.QueryFilter)
	if err = ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []pomodoro.Session{})
	}
	filter.Clean()

	sessions, err := api.svc.Query(ctx.Request().Context(), owner, filter)
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	if sessions == nil {
		sessions = []pomodoro.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *sessionApi) destroy(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), owner, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core/course"
)

type courseApi struct {
	svc      course.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, jwt, ents echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{svc: deps.CourseSvc, validate: deps.Validate}

	cg := g.Group("/courses", jwt, ents)
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *courseApi) create(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	var data course.NewCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), owner, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) query(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	filter := new(course.QueryFilter)
	if err = ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []course.Course{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	courses, err := api.svc.Query(ctx.Request().Context(), owner, filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	c, err := api.svc.Get(ctx.Request().Context(), owner, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) update(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	var data course.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Update(ctx.Request().Context(), owner, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	owner, err := getContextOwner(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), owner, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/taskademic/core/plan"
)

func registerPlanAPI(g *echo.Group, jwt, ents echo.MiddlewareFunc, _ ServerDeps) {
	g.GET("/plan", retrievePlan, jwt, ents)
}

type PlanResponse struct {
	Plan     plan.Plan                    `json:"plan"`
	Features map[plan.Feature]bool        `json:"features"`
	Limits   map[plan.Resource]plan.Limit `json:"limits"`
}

// retrievePlan tells the client what the context user's plan unlocks.
func retrievePlan(ctx echo.Context) error {
	e := getContextEntitlements(ctx)
	return ctx.JSON(http.StatusOK, PlanResponse{
		Plan:     e.Plan,
		Features: e.Features(),
		Limits:   e.Limits(),
	})
}

package echoapi

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/user"
)

const contextEntitlementsKey = "entitlements"

func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id := ctx.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.New().String()
			}
			ctx.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(ctx)
		}
	}
}

func adminMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if claims.IsAdmin && contextHasAnyRole(ctx, roles) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// entitlementsMiddleware loads the context user and what their plan unlocks.
// Must run after the JWT middleware.
func entitlementsMiddleware(svc user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return err
			}
			ctx.Set(contextEntitlementsKey, usr.Entitlements())
			return next(ctx)
		}
	}
}

// featureMiddleware refuses the request with a *plan.FeatureError when `f` is locked.
// Must run after entitlementsMiddleware.
func featureMiddleware(f plan.Feature) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if err := getContextEntitlements(ctx).RequireFeature(f); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}

// getContextEntitlements falls back to the free plan when nothing was loaded.
func getContextEntitlements(ctx echo.Context) plan.Entitlements {
	if ents, ok := ctx.Get(contextEntitlementsKey).(plan.Entitlements); ok {
		return ents
	}
	return plan.For(plan.Free)
}

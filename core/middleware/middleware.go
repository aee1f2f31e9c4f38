package middleware

import (
	"sponsorsync-api/core/cache"
	"sponsorsync-api/core/constants"
	"sponsorsync-api/core/controller"
	"sponsorsync-api/core/errors"
	"sponsorsync-api/core/logger"
	"sponsorsync-api/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the request middlewares shared by all modules
type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the bearer token and stores its claims in the
// request context under constants.ContextTokenData. Authentication itself
// (issuing tokens, sessions) lives outside this service; the middleware
// only resolves the caller identity.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, err := utils.GetTokenFromHeader(ctx)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Authorization header required")
			}

			if m.cache != nil {
				blacklisted, err := m.cache.IsTokenBlacklisted(ctx.Request().Context(), token)
				if err != nil {
					logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", err)
				} else if blacklisted {
					return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Token has been revoked")
				}
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				logger.Error("Middleware:AuthMiddleware:ValidateAndParseToken", err)
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Invalid or expired token")
			}

			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "Token scope not allowed")
			}

			ctx.Set(constants.ContextTokenData, claims)
			return next(ctx)
		}
	}
}

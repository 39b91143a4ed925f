package router

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"innoreg/internal/errors"
	"innoreg/internal/handler"
	"innoreg/internal/model"
	"innoreg/internal/repository"
	"innoreg/internal/service"
)

// RequestTimeout bounds every request's context. Store round-trips that run
// past the deadline surface as 503 via the error mapping.
func RequestTimeout(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// AdminRequired gates moderation routes. The role is re-read from the
// database rather than trusted from a token minted before a possible
// demotion; the verified actor is stored for the handlers.
func AdminRequired(userRepo repository.UserRepository, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := handler.ActorFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "authorization denied",
					Code:  "UNAUTHENTICATED",
				})
			}

			user, err := userRepo.FindByID(c.Request().Context(), actor.ID)
			if err != nil {
				log.Warn("admin check: user lookup failed",
					zap.String("user_id", actor.ID.String()), zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "user not found",
					Code:  "USER_NOT_FOUND",
				})
			}

			if user.Role != model.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "access denied, admins only",
					Code:  "ADMIN_ONLY",
				})
			}

			c.Set(handler.ActorContextKey, service.Actor{ID: user.ID, Role: user.Role})
			return next(c)
		}
	}
}

// RequestLogger emits one structured line per request.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			req := c.Request()
			res := c.Response()

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			log.Info("request", fields...)
			return err
		}
	}
}

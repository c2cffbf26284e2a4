package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-api/internal/core/domain"
)

// RBAC lets the request through when the caller holds at least one of the
// allowed roles. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(CtxRoles).([]domain.Role)
			caller := domain.User{Roles: roles}
			if !caller.HasAnyRole(allowedRoles...) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

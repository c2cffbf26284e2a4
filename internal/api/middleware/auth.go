package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-api/internal/core/domain"
)

// Context keys set by Auth.
const (
	CtxUsername = "username"
	CtxRoles    = "roles"
)

// Auth validates the JWT and injects the username and roles into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}

			username, _ := claims["username"].(string)
			c.Set(CtxUsername, username)
			c.Set(CtxRoles, rolesClaim(claims["roles"]))

			return next(c)
		}
	}
}

// rolesClaim decodes the roles array, ignoring anything outside the role
// enumeration.
func rolesClaim(v any) []domain.Role {
	raw, _ := v.([]any)
	names := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			names = append(names, s)
		}
	}
	return domain.FilterRoles(names)
}

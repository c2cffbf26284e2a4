package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-api/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxRoles, []domain.Role{domain.RoleEmployee, domain.RoleAdmin})

	called := false
	handler := RBAC(domain.RoleManager, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	for name, roles := range map[string]any{
		"employee only": []domain.Role{domain.RoleEmployee},
		"no roles":      nil,
		"wrong type":    "Admin",
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if roles != nil {
				c.Set(CtxRoles, roles)
			}

			handler := RBAC(domain.RoleManager, domain.RoleAdmin)(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			err := handler(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusForbidden || he.Message != "Forbidden" {
				t.Fatalf("expected 403 Forbidden HTTPError, got %v", err)
			}
			if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
				t.Fatalf("RBAC must leave rendering to the error handler, got %d %q", rec.Code, rec.Body.String())
			}
		})
	}
}

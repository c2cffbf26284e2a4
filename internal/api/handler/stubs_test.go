package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	createFn func(ctx context.Context, in ports.CreateUserInput) (string, error)
	updateFn func(ctx context.Context, in ports.UpdateUserInput) (string, error)
	deleteFn func(ctx context.Context, id string) (string, error)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) { return s.listFn(ctx) }
func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}
func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (string, error) {
	return s.createFn(ctx, in)
}
func (s *stubUserService) Update(ctx context.Context, in ports.UpdateUserInput) (string, error) {
	return s.updateFn(ctx, in)
}
func (s *stubUserService) Delete(ctx context.Context, id string) (string, error) {
	return s.deleteFn(ctx, id)
}

type stubNoteService struct {
	listFn   func(ctx context.Context) ([]domain.NoteView, error)
	createFn func(ctx context.Context, in ports.CreateNoteInput) (string, error)
	updateFn func(ctx context.Context, in ports.UpdateNoteInput) (string, error)
	deleteFn func(ctx context.Context, id string) (string, error)
}

func (s *stubNoteService) List(ctx context.Context) ([]domain.NoteView, error) { return s.listFn(ctx) }
func (s *stubNoteService) Create(ctx context.Context, in ports.CreateNoteInput) (string, error) {
	return s.createFn(ctx, in)
}
func (s *stubNoteService) Update(ctx context.Context, in ports.UpdateNoteInput) (string, error) {
	return s.updateFn(ctx, in)
}
func (s *stubNoteService) Delete(ctx context.Context, id string) (string, error) {
	return s.deleteFn(ctx, id)
}

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

// newJSONContext builds an echo context for a JSON request with the
// validator installed.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/technotes/notes-api/internal/api/handler"
	"github.com/technotes/notes-api/internal/api/middleware"
	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users ports.UserService
	Notes ports.NoteService
	Auth  ports.AuthService

	// JWTSecret signs and verifies access tokens. Empty disables route
	// protection.
	JWTSecret string

	// Mongo and Redis back the readiness probe. Either may be nil.
	Mongo *mongo.Database
	Redis *redis.Client

	// Registerer and Gatherer default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "technotes",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/metrics", "/health", "/health/ready":
				return true
			}
			return false
		},
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	var protect []echo.MiddlewareFunc
	var managers echo.MiddlewareFunc = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if d.JWTSecret == "" {
		d.Logger.Warn().Msg("JWT_SECRET is empty, /auth is disabled and /users and /notes are not protected")
	} else {
		e.POST("/auth", handler.NewAuthHandler(d.Auth).Login)
		protect = append(protect, middleware.Auth(d.JWTSecret))
		managers = middleware.RBAC(domain.RoleManager, domain.RoleAdmin)
	}

	// --- Users ---
	userHandler := handler.NewUserHandler(d.Users)
	users := e.Group("/users", protect...)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create, managers)
	users.PATCH("", userHandler.Update, managers)
	users.DELETE("", userHandler.Delete, managers)

	// --- Notes ---
	noteHandler := handler.NewNoteHandler(d.Notes)
	notes := e.Group("/notes", protect...)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.PATCH("", noteHandler.Update)
	notes.DELETE("", noteHandler.Delete)

	return e
}

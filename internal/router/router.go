// Package router assembles the echo instance and mounts the afisha routes.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-afisha/internal/handler"
	"github.com/iliyamo/cinema-afisha/internal/middleware"
)

// StaticPrefix is where posters and covers are served from.
const StaticPrefix = "/content/afisha"

// New returns an echo instance with validation, request logging, panic
// recovery and CORS for every origin.
func New(log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	return e
}

// RegisterRoutes mounts the routes that live outside the API prefix: the
// health check and, when staticDir is set, the poster directory.
func RegisterRoutes(e *echo.Echo, staticDir string) {
	e.GET("/healthz", handler.Health)
	if staticDir != "" {
		e.Static(StaticPrefix, staticDir)
	}
}

// RegisterAfisha mounts the catalog and order endpoints under prefix.  mws
// apply to the whole group (rate limiting).
func RegisterAfisha(e *echo.Echo, prefix string, films *handler.FilmsHandler, orders *handler.OrderHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group(prefix, mws...)
	g.GET("/films", films.ListFilms)
	g.GET("/films/:id/schedule", films.GetSchedule)
	g.POST("/order", orders.CreateOrder)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-afisha/internal/service"
)

// FilmsHandler serves the catalog read endpoints.
type FilmsHandler struct {
	Catalog *service.CatalogService
	Log     *zap.Logger
}

// ListFilms handles GET /films.
func (h *FilmsHandler) ListFilms(c echo.Context) error {
	res, err := h.Catalog.ListFilms(c.Request().Context())
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetSchedule handles GET /films/:id/schedule.
func (h *FilmsHandler) GetSchedule(c echo.Context) error {
	res, err := h.Catalog.GetSessions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, res)
}

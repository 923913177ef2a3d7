package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-afisha/internal/service"
)

type OrderHandler struct {
	Orders *service.OrderService
	Log    *zap.Logger
}

// CreateOrder handles POST /order.  A body that does not decode (for example
// tickets not being an array) is a 400, as is a failed field validation.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req service.OrderRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.Log, fmt.Errorf("%w: invalid request body", service.ErrValidation))
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, h.Log, err)
	}
	res, err := h.Orders.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, res)
}

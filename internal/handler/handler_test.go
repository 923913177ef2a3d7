package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-afisha/internal/service"
)

func TestWriteError_Status(t *testing.T) {
	cases := []struct {
		err  error
		code int
		kind string
	}{
		{fmt.Errorf("%w: daytime mismatch", service.ErrValidation), http.StatusBadRequest, "bad_request"},
		{fmt.Errorf("%w: film F9", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{fmt.Errorf("%w: seat 1:5", service.ErrConflict), http.StatusConflict, "conflict"},
		{errors.New("db down"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, writeError(c, zap.NewNop(), tc.err))
		assert.Equal(t, tc.code, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error":"`+tc.kind+`"`)
	}
}

func TestWriteError_HidesInternalCause(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, writeError(c, zap.NewNop(), errors.New("dial tcp 10.0.0.1:3306: refused")))
	assert.NotContains(t, rec.Body.String(), "10.0.0.1")
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	ok := service.OrderRequest{Tickets: []service.Ticket{{Film: "F1", Session: "S1", Daytime: "T", Row: 1, Seat: 5, Price: 350}}}
	assert.NoError(t, v.Validate(&ok))

	// the empty list passes here and is rejected by the order service
	assert.NoError(t, v.Validate(&service.OrderRequest{Tickets: []service.Ticket{}}))

	err := v.Validate(&service.OrderRequest{})
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Contains(t, err.Error(), "tickets failed required")

	bad := service.OrderRequest{Tickets: []service.Ticket{{Film: "F1", Session: "S1", Daytime: "T", Row: 0, Seat: 5}}}
	err = v.Validate(&bad)
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Contains(t, err.Error(), "tickets[0].row failed min=1")
}

func TestErrorHandler_RouteNotFound(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"Not Found"}`, rec.Body.String())
}

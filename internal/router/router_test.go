package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-afisha/internal/handler"
	"github.com/iliyamo/cinema-afisha/internal/model"
	"github.com/iliyamo/cinema-afisha/internal/repository"
	"github.com/iliyamo/cinema-afisha/internal/service"
)

const daytime = "2024-06-28T10:00:53+03:00"

func newServer(t *testing.T, staticDir string) (http.Handler, *repository.MemoryFilmRepo) {
	t.Helper()
	repo := repository.NewMemoryFilmRepo([]model.Film{
		{
			ID: "F1", Title: "One", Tags: []string{"drama"},
			Schedule: []model.Session{{ID: "S1", Daytime: daytime, Rows: 5, Seats: 10, Price: 350, Taken: model.Taken{}}},
		},
		{ID: "F2", Title: "Two"},
	})
	log := zap.NewNop()
	e := New(log)
	RegisterRoutes(e, staticDir)
	RegisterAfisha(e, "/api/afisha",
		&handler.FilmsHandler{Catalog: service.NewCatalogService(repo), Log: log},
		&handler.OrderHandler{Orders: service.NewOrderService(repo, nil, log), Log: log},
	)
	return e, repo
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func orderBody(row, seat int, dt string) string {
	b, _ := json.Marshal(map[string]any{
		"email": "a@b.c",
		"phone": "+7",
		"tickets": []map[string]any{{
			"id": "t1", "film": "F1", "session": "S1", "daytime": dt, "row": row, "seat": seat, "price": 350,
		}},
	})
	return string(b)
}

func TestFilms(t *testing.T) {
	h, _ := newServer(t, "")

	rec := do(h, http.MethodGet, "/api/afisha/films", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Total int          `json:"total"`
		Items []model.Film `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "F1", res.Items[0].ID)
	assert.Contains(t, rec.Body.String(), `"taken":[]`)
	assert.Contains(t, rec.Body.String(), `"schedule":[]`)
}

func TestSchedule(t *testing.T) {
	h, _ := newServer(t, "")

	rec := do(h, http.MethodGet, "/api/afisha/films/F1/schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = do(h, http.MethodGet, "/api/afisha/films/F2/schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":0,"items":[]}`, rec.Body.String())

	rec = do(h, http.MethodGet, "/api/afisha/films/F9/schedule", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "F9")
}

func TestOrder(t *testing.T) {
	h, repo := newServer(t, "")

	rec := do(h, http.MethodPost, "/api/afisha/order", orderBody(1, 5, daytime))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t,
		`{"total":1,"items":[{"id":"S1","film":"F1","session":"S1","daytime":"`+daytime+`","row":1,"seat":5,"price":350}]}`,
		rec.Body.String())

	f, err := repo.FindByID(context.Background(), "F1")
	require.NoError(t, err)
	assert.Equal(t, model.Taken{"1:5"}, f.Schedule[0].Taken)

	rec = do(h, http.MethodPost, "/api/afisha/order", orderBody(1, 5, daytime))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(h, http.MethodPost, "/api/afisha/order", orderBody(1, 6, "2024-06-29T10:00:53+03:00"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrder_BadRequests(t *testing.T) {
	h, _ := newServer(t, "")

	cases := map[string]string{
		"empty tickets":     `{"email":"a@b.c","phone":"+7","tickets":[]}`,
		"missing tickets":   `{"email":"a@b.c","phone":"+7"}`,
		"tickets not array": `{"email":"a@b.c","phone":"+7","tickets":"F1"}`,
		"row below one":     orderBody(0, 5, daytime),
		"broken json":       `{"tickets":`,
	}
	for name, body := range cases {
		rec := do(h, http.MethodPost, "/api/afisha/order", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Contains(t, rec.Body.String(), `"error":"bad_request"`, name)
	}
}

func TestOrder_UnknownFilm(t *testing.T) {
	h, _ := newServer(t, "")
	body := strings.Replace(orderBody(1, 1, daytime), `"film":"F1"`, `"film":"F9"`, 1)

	rec := do(h, http.MethodPost, "/api/afisha/order", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "F9")
}

func TestHealthStaticAndCORS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "poster.txt"), []byte("poster"), 0o644))
	h, _ := newServer(t, dir)

	rec := do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(h, http.MethodGet, StaticPrefix+"/poster.txt", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "poster", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/afisha/films", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

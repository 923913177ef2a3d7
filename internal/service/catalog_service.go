package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/cinema-afisha/internal/model"
	"github.com/iliyamo/cinema-afisha/internal/repository"
)

type FilmsResponse struct {
	Total int          `json:"total"`
	Items []model.Film `json:"items"`
}

type SessionsResponse struct {
	Total int             `json:"total"`
	Items []model.Session `json:"items"`
}

// CatalogService answers the read-only catalog queries.
type CatalogService struct {
	films repository.FilmRepository
}

func NewCatalogService(films repository.FilmRepository) *CatalogService {
	return &CatalogService{films: films}
}

// ListFilms returns every film together with the store's film count.  The
// two are fetched concurrently and may disagree while orders are written.
func (s *CatalogService) ListFilms(ctx context.Context) (FilmsResponse, error) {
	var (
		items []model.Film
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.films.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.films.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return FilmsResponse{}, err
	}
	if items == nil {
		items = []model.Film{}
	}
	return FilmsResponse{Total: total, Items: items}, nil
}

// GetSessions returns the schedule of one film.
func (s *CatalogService) GetSessions(ctx context.Context, filmID string) (SessionsResponse, error) {
	film, err := s.films.FindByID(ctx, filmID)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return SessionsResponse{}, fmt.Errorf("%w: film %s", ErrNotFound, filmID)
		}
		return SessionsResponse{}, err
	}
	items := film.Schedule
	if items == nil {
		items = []model.Session{}
	}
	return SessionsResponse{Total: len(items), Items: items}, nil
}

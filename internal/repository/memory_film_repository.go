package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/cinema-afisha/internal/model"
)

// MemoryFilmRepo keeps the catalog in process.  It backs the "memory" driver
// for local runs and is the store used by handler and service tests.  Every
// read returns a deep copy so callers never share sessions with the store.
type MemoryFilmRepo struct {
	mu    sync.RWMutex
	films map[string]model.Film
}

// NewMemoryFilmRepo seeds the store with films.
func NewMemoryFilmRepo(films []model.Film) *MemoryFilmRepo {
	r := &MemoryFilmRepo{films: make(map[string]model.Film, len(films))}
	for _, f := range films {
		r.films[f.ID] = f.Clone()
	}
	return r
}

func (r *MemoryFilmRepo) FindAll(ctx context.Context) ([]model.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.films))
	for id := range r.films {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]model.Film, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.films[id].Clone())
	}
	return out, nil
}

func (r *MemoryFilmRepo) FindByID(ctx context.Context, id string) (*model.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.films[id]
	if !ok {
		return nil, ErrFilmNotFound
	}
	c := f.Clone()
	return &c, nil
}

func (r *MemoryFilmRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Film{}
	for _, id := range ids {
		if f, ok := r.films[id]; ok {
			out = append(out, f.Clone())
		}
	}
	return out, nil
}

func (r *MemoryFilmRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.films), nil
}

func (r *MemoryFilmRepo) SaveTaken(ctx context.Context, filmID, sessionID string, prev, next model.Taken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.films[filmID]
	if !ok {
		return ErrFilmNotFound
	}
	session := f.FindSession(sessionID)
	if session == nil {
		return ErrFilmNotFound
	}
	if !session.Taken.Equal(prev) {
		return ErrStaleSession
	}
	// f shares its Schedule backing array with the map entry, so assigning
	// through session updates the stored film.
	session.Taken = append(model.Taken(nil), next...)
	return nil
}

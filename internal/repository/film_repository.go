package repository

import (
	"context"

	"github.com/iliyamo/cinema-afisha/internal/model"
)

// FilmRepository is the catalog store as seen by the services.  Every backend
// (document, relational, in-memory) implements the same capability set so the
// reservation and order logic never depend on a concrete store.
type FilmRepository interface {
	// FindAll returns every film with its sessions.
	FindAll(ctx context.Context) ([]model.Film, error)
	// FindByID returns one film or ErrFilmNotFound.
	FindByID(ctx context.Context, id string) (*model.Film, error)
	// FindByIDs returns the films matching ids in one round-trip.  Unknown ids
	// are skipped silently; callers detect them by comparing ids.
	FindByIDs(ctx context.Context, ids []string) ([]model.Film, error)
	// Count returns the number of stored films.
	Count(ctx context.Context) (int, error)
	// SaveTaken replaces a session's taken set with next, provided the stored
	// set still equals prev.  It returns ErrStaleSession otherwise and
	// ErrFilmNotFound when the film or session is gone.
	SaveTaken(ctx context.Context, filmID, sessionID string, prev, next model.Taken) error
}

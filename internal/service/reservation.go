package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-afisha/internal/model"
	"github.com/iliyamo/cinema-afisha/internal/repository"
)

// Reserve adds seatKey to the taken set of one session of film.
//
// The checks run against the caller's copy of film first (session exists,
// seat free, daytime matches) so a rejected request never touches the store.
// The write itself is based on a fresh read: the seat is checked again on
// that copy and SaveTaken only succeeds if the session has not changed since,
// otherwise the reservation fails with ErrConflict.  The returned film is the
// fresh copy with the new seat applied.
func Reserve(ctx context.Context, films repository.FilmRepository, film *model.Film, sessionID, seatKey, daytime string) (*model.Film, error) {
	session := film.FindSession(sessionID)
	if session == nil {
		return nil, fmt.Errorf("%w: session %s of film %s", ErrNotFound, sessionID, film.ID)
	}
	if session.Taken.Has(seatKey) {
		return nil, fmt.Errorf("%w: seat %s of session %s is already taken", ErrConflict, seatKey, sessionID)
	}
	if session.Daytime != daytime {
		return nil, fmt.Errorf("%w: daytime %q does not match session %s", ErrValidation, daytime, sessionID)
	}

	fresh, err := films.FindByID(ctx, film.ID)
	if err != nil {
		if errors.Is(err, repository.ErrFilmNotFound) {
			return nil, fmt.Errorf("%w: film %s", ErrNotFound, film.ID)
		}
		return nil, err
	}
	current := fresh.FindSession(sessionID)
	if current == nil {
		return nil, fmt.Errorf("%w: session %s of film %s", ErrNotFound, sessionID, film.ID)
	}
	if current.Taken.Has(seatKey) {
		return nil, fmt.Errorf("%w: seat %s of session %s is already taken", ErrConflict, seatKey, sessionID)
	}

	next := current.Taken.With(seatKey)
	if err := films.SaveTaken(ctx, film.ID, sessionID, current.Taken, next); err != nil {
		switch {
		case errors.Is(err, repository.ErrStaleSession):
			return nil, fmt.Errorf("%w: session %s changed while reserving seat %s", ErrConflict, sessionID, seatKey)
		case errors.Is(err, repository.ErrFilmNotFound):
			return nil, fmt.Errorf("%w: session %s of film %s", ErrNotFound, sessionID, film.ID)
		}
		return nil, err
	}
	current.Taken = next
	return fresh, nil
}

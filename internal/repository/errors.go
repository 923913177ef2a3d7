// Package repository defines the film catalog store and its backends.  The
// sentinel errors below let the service layer tell a missing film apart from
// a write that lost a race, without knowing which backend produced them.
package repository

import "errors"

// ErrFilmNotFound is returned when no film matches the requested id.
var ErrFilmNotFound = errors.New("film not found")

// ErrStaleSession is returned by SaveTaken when the session's stored taken
// set no longer equals the one the caller read, i.e. another reservation was
// written in between.  Nothing is written in that case.
var ErrStaleSession = errors.New("session was modified concurrently")

// ErrUnknownDriver is returned when a backend name is not recognised.
var ErrUnknownDriver = errors.New("unknown database driver")

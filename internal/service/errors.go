// Package service holds the afisha use cases: catalog queries, seat
// reservation and order placement.  Failures are reported as one of the
// sentinel errors below, wrapped with the offending id; handlers map them to
// HTTP statuses with errors.Is.
package service

import "errors"

var (
	ErrValidation = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

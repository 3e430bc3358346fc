package types

import "errors"

// Sentinel domain errors. Handlers map these onto HTTP statuses; everything
// else is treated as an infrastructure failure and surfaces as a 500.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
)

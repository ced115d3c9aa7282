package session

import "errors"

// ErrNoEntry is returned by Flush when no cached context exists for the id.
// Losing a flush has a durable-data consequence, so this surfaces to the
// caller instead of being swallowed.
var ErrNoEntry = errors.New("no cached context for this id")

// ErrNameRequired is returned when a visit cannot be scheduled because the
// caller's name is unknown.
var ErrNameRequired = errors.New("caller name required before scheduling")

// ErrInvalidDate is returned for a visit date that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid visit date format")

// ErrInvalidTime is returned for a visit time in no accepted layout.
var ErrInvalidTime = errors.New("invalid visit time format")

package domain

import "errors"

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidLocation = errors.New("invalid location")
	ErrInvalidDate     = errors.New("invalid date")
	ErrSeed            = errors.New("bad seed data")
)

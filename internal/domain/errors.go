package domain

import "errors"

var (
	// ErrInvalidDate indicates a missing or unparseable date on a record.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidQuery indicates a search query that is empty after trimming.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNotFound indicates that a requested user or certificate is absent.
	ErrNotFound = errors.New("not found")
)

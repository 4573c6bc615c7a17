package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidCriteria = errors.New("invalid search criteria")

	// ErrCandidateSourceUnavailable is returned (wrapped) when inventory can't
	// be reached. The pipeline never swallows it.
	ErrCandidateSourceUnavailable = errors.New("candidate source unavailable")
)

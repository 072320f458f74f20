// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("title not found")

	// ErrInvalidCount is matched by every *InvalidCountError.
	ErrInvalidCount = errors.New("invalid recommendation count")
)

// NotFoundError reports a title that does not identify exactly one movie.
type NotFoundError struct {
	Title string

	// Reason is the catalog error: catalog.ErrTitleNotFound or
	// catalog.ErrAmbiguousTitle.
	Reason error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("title not found: %q", e.Title)
}

// Unwrap exposes both ErrNotFound and the catalog reason to errors.Is.
func (e *NotFoundError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrNotFound}
	}
	return []error{ErrNotFound, e.Reason}
}

// InvalidCountError reports a requested count below one.
type InvalidCountError struct {
	N int
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("invalid recommendation count %d: must be at least 1", e.N)
}

func (e *InvalidCountError) Unwrap() error {
	return ErrInvalidCount
}

// IsInputError reports whether err is caused by the caller's input rather
// than by the service.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidCount)
}

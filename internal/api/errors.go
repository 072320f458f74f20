// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// respondServiceError maps an error from the recommendation layer to a status
// code and envelope.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *recommend.NotFoundError
	var invalid *validation.RequestValidationError

	switch {
	case errors.As(err, &notFound):
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, notFound.Error(), nil)
	case errors.As(err, &invalid):
		respondValidationError(w, r, invalid)
	case errors.Is(err, recommend.ErrInvalidCount):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("Request failed")
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "internal server error", nil)
	}
}

// respondValidationError writes a 400 with per-field details.
func respondValidationError(w http.ResponseWriter, r *http.Request, err *validation.RequestValidationError) {
	apiErr := err.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}

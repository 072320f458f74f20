// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestEnrichedRecommendation_MissingMediaIsNull(t *testing.T) {
	t.Parallel()

	rec := EnrichedRecommendation{
		Rank:           1,
		Title:          "Aliens",
		ExternalID:     "679",
		Score:          0.91,
		TMDBURL:        "https://www.themoviedb.org/movie/679",
		PlaceholderURL: "https://via.placeholder.com/300x450?text=No+Image",
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)
	for _, want := range []string{`"poster_url":null`, `"trailer_url":null`, `"placeholder_url":"https://via.placeholder.com/300x450?text=No+Image"`} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON %s missing %s", got, want)
		}
	}
}

func TestAPIResponse_ErrorOmittedOnSuccess(t *testing.T) {
	t.Parallel()

	resp := APIResponse{
		Status:   StatusSuccess,
		Data:     MovieList{Total: 0, Movies: []MovieSummary{}},
		Metadata: Metadata{Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)
	if strings.Contains(got, `"error"`) {
		t.Errorf("success response contains error field: %s", got)
	}
	if strings.Contains(got, `"request_id"`) {
		t.Errorf("empty request_id should be omitted: %s", got)
	}
	if !strings.Contains(got, `"movies":[]`) {
		t.Errorf("empty movie list should encode as []: %s", got)
	}
}

func TestAPIResponse_ErrorShape(t *testing.T) {
	t.Parallel()

	resp := APIResponse{
		Status: StatusError,
		Error:  &APIError{Code: ErrCodeNotFound, Message: "title not found"},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	errObj, ok := decoded["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("error field = %v", decoded["error"])
	}
	if errObj["code"] != ErrCodeNotFound {
		t.Errorf("code = %v, want %s", errObj["code"], ErrCodeNotFound)
	}
	if _, present := errObj["details"]; present {
		t.Error("nil details should be omitted")
	}
}

// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
)

// maxErrorBodySize limits how much of an error response is read for logging.
const maxErrorBodySize = 4 * 1024

// errNotFound marks a 404 from TMDB. It means "no such movie", not an outage,
// so the circuit breaker counts it as a success.
var errNotFound = errors.New("tmdb: resource not found")

var errEmptyID = errors.New("tmdb: empty movie id")

// errRateLimited marks a call the local limiter could not admit in time.
var errRateLimited = errors.New("tmdb: rate limiter")

// statusError is a non-200 response other than 404.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("tmdb: request failed with status %d: %s", e.Status, e.Body)
}

// isTransient reports whether err means TMDB gave no answer about the movie:
// the call was refused locally, timed out, could not connect, or hit a 429
// or 5xx response.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if isRejected(err) || errors.Is(err, errRateLimited) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Status == http.StatusTooManyRequests || se.Status >= http.StatusInternalServerError
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// readBodyForError reads up to maxErrorBodySize bytes for diagnostics.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return string(body)
}

// buildURL joins the base URL, an escaped path and the api_key query.
func buildURL(baseURL, apiKey string, segments ...string) string {
	path := ""
	for _, s := range segments {
		path += "/" + url.PathEscape(s)
	}
	q := url.Values{}
	q.Set("api_key", apiKey)
	return baseURL + path + "?" + q.Encode()
}

// getJSON performs a GET and decodes a 200 response into out.
func getJSON(ctx context.Context, client *http.Client, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		// *url.Error embeds the request URL, which carries the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return &statusError{Status: resp.StatusCode, Body: readBodyForError(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient returns a client pointed at srv with pacing disabled.
func newTestClient(t *testing.T, srv *httptest.Server, timeout time.Duration) *Client {
	t.Helper()
	c, err := NewClient(Config{
		APIKey:       "test-key",
		BaseURL:      srv.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		PosterSize:   "w500",
		Timeout:      timeout,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "   "} {
		_, err := NewClient(Config{APIKey: key})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("NewClient(%q) error = %v, want ErrMissingAPIKey", key, err)
		}
	}
}

func TestNewClient_AppliesDefaults(t *testing.T) {
	t.Parallel()

	c, err := NewClient(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	def := DefaultConfig()
	if c.cfg.BaseURL != def.BaseURL {
		t.Errorf("BaseURL = %q, want %q", c.cfg.BaseURL, def.BaseURL)
	}
	if c.cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.cfg.Timeout)
	}
	if c.cfg.Breaker != def.Breaker {
		t.Errorf("Breaker = %+v, want defaults", c.cfg.Breaker)
	}
}

func TestFetchPosterURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		want      string
		present   bool
		transient bool
	}{
		{
			name:    "poster path present",
			status:  http.StatusOK,
			body:    `{"id":19995,"title":"Avatar","poster_path":"/abc.jpg"}`,
			want:    "https://image.tmdb.org/t/p/w500/abc.jpg",
			present: true,
		},
		{
			name:   "poster path null",
			status: http.StatusOK,
			body:   `{"id":19995,"poster_path":null}`,
		},
		{
			name:   "poster path missing",
			status: http.StatusOK,
			body:   `{"id":19995}`,
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `{"poster_path":`,
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"status_code":34}`,
		},
		{
			name:      "server error",
			status:    http.StatusInternalServerError,
			body:      `oops`,
			transient: true,
		},
		{
			name:      "throttled",
			status:    http.StatusTooManyRequests,
			body:      `{"status_code":25}`,
			transient: true,
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"status_code":7}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/movie/19995" {
					t.Errorf("path = %q, want /movie/19995", r.URL.Path)
				}
				if got := r.URL.Query().Get("api_key"); got != "test-key" {
					t.Errorf("api_key = %q, want test-key", got)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv, time.Second)
			got := c.FetchPosterURL(context.Background(), "19995")
			if got.Present != tt.present {
				t.Fatalf("Present = %v, want %v", got.Present, tt.present)
			}
			if got.URL != tt.want {
				t.Errorf("URL = %q, want %q", got.URL, tt.want)
			}
			if got.Transient != tt.transient {
				t.Errorf("Transient = %v, want %v", got.Transient, tt.transient)
			}
		})
	}
}

func TestFetchTrailerURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    string
		present bool
	}{
		{
			name: "first youtube trailer wins",
			body: `{"id":1,"results":[
				{"key":"teaser1","site":"YouTube","type":"Teaser"},
				{"key":"vimeo1","site":"Vimeo","type":"Trailer"},
				{"key":"yt1","site":"YouTube","type":"Trailer"},
				{"key":"yt2","site":"YouTube","type":"Trailer"}]}`,
			want:    "https://www.youtube.com/watch?v=yt1",
			present: true,
		},
		{
			name: "no youtube entries",
			body: `{"id":1,"results":[{"key":"v","site":"Vimeo","type":"Trailer"}]}`,
		},
		{
			name: "empty results",
			body: `{"id":1,"results":[]}`,
		},
		{
			name: "results missing",
			body: `{"id":1}`,
		},
		{
			name:    "empty key skipped",
			body:    `{"results":[{"key":"","site":"YouTube","type":"Trailer"},{"key":"ok","site":"YouTube","type":"Trailer"}]}`,
			want:    "https://www.youtube.com/watch?v=ok",
			present: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/movie/1/videos" {
					t.Errorf("path = %q, want /movie/1/videos", r.URL.Path)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv, time.Second)
			got := c.FetchTrailerURL(context.Background(), "1")
			if got.Present != tt.present || got.URL != tt.want {
				t.Errorf("FetchTrailerURL() = %+v, want {URL:%q Present:%v}", got, tt.want, tt.present)
			}
		})
	}
}

func TestFetch_TimeoutIsAbsent(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv, 50*time.Millisecond)

	start := time.Now()
	got := c.FetchPosterURL(context.Background(), "42")
	if got.Present || !got.Transient {
		t.Errorf("FetchPosterURL() = %+v, want transient absent on timeout", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
}

func TestFetch_UnreachableIsAbsent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, srv, time.Second)
	srv.Close()

	if got := c.FetchTrailerURL(context.Background(), "42"); got.Present || !got.Transient {
		t.Errorf("FetchTrailerURL() = %+v, want transient absent", got)
	}
}

func TestFetch_RateLimitedIsTransient(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"poster_path":"/a.jpg"}`))
	}))
	defer srv.Close()

	// One token, refilled every 100s: the second call cannot be admitted
	// before its 50ms deadline.
	c, err := NewClient(Config{
		APIKey:            "k",
		BaseURL:           srv.URL,
		Timeout:           50 * time.Millisecond,
		RequestsPerSecond: 0.01,
		Burst:             1,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if got := c.FetchPosterURL(context.Background(), "1"); !got.Present {
		t.Fatalf("first FetchPosterURL() = %+v, want present", got)
	}
	got := c.FetchPosterURL(context.Background(), "2")
	if got.Present || !got.Transient {
		t.Errorf("second FetchPosterURL() = %+v, want transient absent", got)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server called %d times, want 1", n)
	}
}

func TestFetch_EmptyIDSkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, time.Second)
	if got := c.FetchPosterURL(context.Background(), ""); got.Present || got.Transient {
		t.Errorf("FetchPosterURL(\"\") = %+v, want absent", got)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("server called %d times, want 0", n)
	}
}

func TestFetch_IDIsPathEscaped(t *testing.T) {
	t.Parallel()

	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, time.Second)
	c.FetchPosterURL(context.Background(), "1/videos")
	if gotPath := <-paths; gotPath != "/movie/1%2Fvideos" {
		t.Errorf("path = %q, want escaped id", gotPath)
	}
}

func TestGetJSON_ErrorDoesNotLeakAPIKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	reqURL := buildURL(srv.URL, "super-secret", "movie", "1")
	err := getJSON(context.Background(), srv.Client(), reqURL, &movieDetails{})
	if err == nil {
		t.Fatal("getJSON() error = nil, want connection error")
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Errorf("error leaks api key: %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	got := buildURL("https://api.themoviedb.org/3", "k&y", "movie", "550", "videos")
	want := "https://api.themoviedb.org/3/movie/550/videos?api_key=k%26y"
	if got != want {
		t.Errorf("buildURL() = %q, want %q", got, want)
	}
}

func TestMovieURL(t *testing.T) {
	t.Parallel()

	c, err := NewClient(Config{APIKey: "k", MovieBaseURL: "https://www.themoviedb.org/movie/"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if got := c.MovieURL("603"); got != "https://www.themoviedb.org/movie/603" {
		t.Errorf("MovieURL() = %q", got)
	}
}

func TestPosterURL_AddsLeadingSlash(t *testing.T) {
	t.Parallel()

	c, err := NewClient(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if got := c.posterURL("x.jpg"); got != "https://image.tmdb.org/t/p/w500/x.jpg" {
		t.Errorf("posterURL() = %q", got)
	}
}

func TestFirstTrailer(t *testing.T) {
	t.Parallel()

	v := videoList{Results: []video{
		{Key: "a", Site: "youtube", Type: "Trailer"},
		{Key: "b", Site: "YouTube", Type: "trailer"},
	}}
	if key, ok := v.firstTrailer(); ok {
		t.Errorf("firstTrailer() = %q, want none (matching is case-sensitive)", key)
	}
}

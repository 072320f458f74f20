// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP middleware for the Cinematch API.

All middleware uses the chi signature func(http.Handler) http.Handler so it
can be mounted with r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)        // X-Request-ID + logging context
	r.Use(middleware.AccessLog)        // one zerolog line per request
	r.Use(middleware.PrometheusMetrics)

RequestID accepts an upstream X-Request-ID when it is short and printable,
otherwise it generates a UUID. The ID is echoed in the response header and
stored with logging.ContextWithRequestID, and a logger carrying the method
and path is stored with logging.ContextWithLogger, so logging.Ctx(r.Context())
tags every line with all three.

PrometheusMetrics labels requests by chi route pattern rather than raw path,
keeping the endpoint label bounded for paths such as
/api/v1/movies/{externalID}/poster.
*/
package middleware

// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP REST API layer for Cinematch.

Routes:

	GET    /api/v1/health                         liveness, catalog size, cache stats
	GET    /api/v1/movies                         every title in catalog order
	GET    /api/v1/movies/detail?title=           selected movie with poster and trailer
	GET    /api/v1/movies/{externalID}/poster     cached poster lookup
	GET    /api/v1/movies/{externalID}/trailer    cached trailer lookup
	GET    /api/v1/recommendations?title=&n=      ranked and enriched recommendations
	GET    /api/v1/stats/popular?limit=           most requested titles
	DELETE /api/v1/cache                          purge the metadata cache (*)
	DELETE /api/v1/cache/{externalID}             drop one movie's lookups (*)
	GET    /metrics                               Prometheus
	GET    /swagger/*                             OpenAPI UI

(*) mounted only when RouterConfig.AllowCachePurge is set. They carry no
authentication and belong behind a trusted network boundary.

Every /api/v1 response uses the models.APIResponse envelope. Errors map to
status codes as follows:

	*recommend.NotFoundError              404 NOT_FOUND
	*validation.RequestValidationError    400 VALIDATION_ERROR
	recommend.ErrInvalidCount             400 VALIDATION_ERROR
	anything else                         500 INTERNAL_ERROR

Internal error text is logged, never returned to the client.

Usage:

	handler := api.NewHandler(engine, metadataService, api.Options{
	    DefaultResults: cfg.Recommend.DefaultResults,
	    MaxResults:     cfg.Recommend.MaxResults,
	})
	handler.WithEvents(bus, tracker)

	srv := &http.Server{
	    Addr:    cfg.Server.Addr(),
	    Handler: api.NewRouter(handler, api.DefaultRouterConfig()),
	}
*/
package api

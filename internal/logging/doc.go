// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package logging provides zerolog-based structured logging for Cinematch.
//
// A single global logger is configured once at startup with Init and is
// then used through package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("title", title).Msg("Recommendation served")
//	logging.Ctx(ctx).Warn().Err(err).Msg("TMDB lookup failed")
//
// Output is JSON by default and human-readable with Format "console".
// When Config.File is set, log lines are also written to a size-rotated file
// managed by lumberjack.
//
// # Adapters
//
// Two libraries used by the service expect their own logger types:
//
//   - suture (through sutureslog) takes a *slog.Logger, see NewSlogLogger
//   - watermill takes a watermill.LoggerAdapter, see NewWatermillLogger
//
// Both adapters forward to the same zerolog logger so every line shares one
// format and level.
//
// # Request Context
//
// HTTP middleware stores a request ID in the context with ContextWithRequestID.
// Ctx(ctx) returns a logger carrying that ID.
package logging

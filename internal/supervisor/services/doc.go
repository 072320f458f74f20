// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services adapts Cinematch components to suture.Service.

Each wrapper turns a component's own lifecycle (ListenAndServe/Shutdown,
Run/Close, a periodic maintenance call) into a context-aware Serve that
returns when the context is canceled:

  - HTTPServerService: an *http.Server with graceful shutdown
  - EventRouterService: the watermill router that folds recommendation
    events into the popularity tally, rebuilt on every restart
  - CacheSweeperService: periodic Sweep of TTL caches

All wrappers implement fmt.Stringer so supervisor logs name them.
*/
package services

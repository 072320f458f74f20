// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs Cinematch's long-lived components under suture v4.

The tree has three layers, each with its own failure counting:

	cinematch
	├── cache-layer
	│   └── CacheSweeperService
	├── messaging-layer
	│   └── EventRouterService (when events are enabled)
	└── api-layer
	    └── HTTPServerService

Supervisor events (service start, panic, backoff, termination) are written
through sutureslog to the slog bridge in the logging package, so they share
the zerolog output of the rest of the service.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCacheService(services.NewCacheSweeperService(interval, sweepers...))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	return tree.Serve(ctx)

Canceling ctx stops every layer; each service gets ShutdownTimeout to
return before it is reported by UnstoppedServiceReport.

The service wrappers live in the services subpackage.
*/
package supervisor

// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package services provides suture.Service wrappers for Cognatus components.

This package adapts application components to the suture v4 supervision
model, translating other lifecycle patterns (ListenAndServe, RunWithContext)
into suture's context-aware Serve pattern.

# Overview

Each wrapper implements the suture.Service interface:

	type Service interface {
	    Serve(ctx context.Context) error
	}

The wrappers handle:
  - Lifecycle translation to the Serve pattern
  - Graceful shutdown via context cancellation
  - Error propagation for supervisor restart decisions
  - Service identification via fmt.Stringer

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

WebSocket Hub (WebSocketHubService):
  - Wraps websocket.Hub with context support
  - Handles client connection cleanup on shutdown

Most other long-running Cognatus components (cache.Cache, history.Store,
websocket.Bridge) implement suture.Service themselves and need no wrapper
from this package.

# Design Notes

Wrappers depend on small local interfaces (HTTPServer, ContextHub) rather
than concrete types, which keeps this package import-light and makes the
wrappers trivially testable with mocks.

Each wrapper returns ctx.Err() on clean shutdown so the supervisor can
distinguish requested shutdown from a crash.
*/
package services

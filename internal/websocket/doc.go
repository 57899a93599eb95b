// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

/*
Package websocket provides real-time streaming of discovery events to
connected frontend clients.

This package implements WebSocket support for pushing comparison results,
recommendation run progress, and pipeline failures to dashboards as they
happen. It uses the gorilla/websocket library with a hub-client
architecture for efficient message broadcasting, plus a bridge that
subscribes to the in-process event bus and forwards every published
event to the hub.

Key Components:

  - Hub: Central message broker that manages client connections and broadcasts
  - Client: Represents a single WebSocket connection with read/write goroutines
  - Bridge: Event bus subscriber that forwards discovery events to the hub
  - Message: Typed message structure sent to clients

Architecture:

The package implements a hub-and-spoke pattern fed by the event bus:

	┌──────────┐     ┌──────────┐
	│ EventBus │ ──▶ │  Bridge  │
	└──────────┘     └────┬─────┘
	                      ▼
	                 ┌──────────┐
	                 │   Hub    │ ← Broadcasts to all clients
	                 └────┬─────┘
	                      │
	                ┌─────┴────┬─────────┬─────────┐
	                │          │         │         │
	                │ Client1  │ Client2 │ Client3 │ Client4
	                │          │         │         │
	                └──────────┴─────────┴─────────┘

Each client has two goroutines:
  - readPump: Reads from WebSocket, handles pings
  - writePump: Writes to WebSocket, sends periodic pings

Message Types:

Discovery events keep their bus topic as the message type, so clients
can route on the same names the server publishes:

  - discovery.run.completed: Recommendation run finished (run_id, result_count)
  - discovery.query.failed: A search query inside a run failed
  - discovery.candidate.skipped: A candidate was excluded from a run
  - genome.fetch.failed: Upstream profile fetch failed during a run
  - comparison.completed: A pairwise comparison finished (scores, usernames)
  - pong: Reply to a client ping

Usage Example - Server:

	import (
	    "github.com/danarhys/cognatus/internal/websocket"
	    "net/http"
	)

	// Create hub and bridge, run both under the supervisor
	hub := websocket.NewHub()
	bridge := websocket.NewBridge(bus, hub)

	// WebSocket upgrade endpoint registers the client with the hub
	// (see internal/api's /ws handler)

	// Events published anywhere in the process reach every client:
	bus.PublishRunCompleted(ctx, runID, "torvalds", 10, 42)

Usage Example - Client (JavaScript):

	const ws = new WebSocket('ws://localhost:7887/api/v1/ws');

	ws.onmessage = (event) => {
	    const msg = JSON.parse(event.data);

	    if (msg.type === 'discovery.run.completed') {
	        console.log(`Run ${msg.data.run_id}: ${msg.data.result_count} matches`);
	        refreshResults();
	    }

	    if (msg.type === 'comparison.completed') {
	        updateScoreboard(msg.data);
	    }
	};

Connection Lifecycle:

1. Client connects via HTTP upgrade
2. Hub registers client
3. Client starts read/write goroutines
4. Bridge forwards bus events, hub broadcasts to all clients
5. Client disconnects (network error or explicit close)
6. Hub unregisters client and cleans up

Thread Safety:

The package is fully thread-safe:
  - Hub uses mutex for client map access
  - Channels coordinate goroutine communication
  - Each client has separate read/write goroutines
  - No shared mutable state between clients

Backpressure:

Broadcasting never blocks the publisher:
  - A full hub broadcast buffer drops the message (recorded in metrics)
  - A full per-client send buffer drops that client as a slow consumer
  - Dead connections are detected via ping/pong timeout (60s)

Configuration:

WebSocket settings:
  - writeWait: 10 seconds (time allowed to write a message)
  - pongWait: 60 seconds (time allowed to read a pong)
  - pingPeriod: 54 seconds (ping interval, must be < pongWait)
  - maxMessageSize: 4 KB (clients only send small control messages)

See Also:

  - github.com/gorilla/websocket: Underlying WebSocket library
  - internal/events: Bus the bridge subscribes to
  - internal/api: WebSocket endpoint handler
*/
package websocket

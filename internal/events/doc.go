// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

// Package events provides the in-process event bus that carries
// discovery pipeline telemetry using Watermill's gochannel pubsub.
//
// Every notable moment in a discovery run publishes a typed event:
// queries that fail, candidates that get skipped, genome fetches that
// error out, runs and comparisons that complete. Consumers subscribe
// by topic without the publishers knowing who is listening:
//
//	┌──────────────┐  ┌──────────────┐  ┌──────────────┐
//	│  Discovery   │  │   Genome     │  │  Similarity  │
//	│   Pipeline   │  │    Cache     │  │   Handlers   │
//	└──────┬───────┘  └──────┬───────┘  └──────┬───────┘
//	       │                 │                 │
//	       └─────────────────┼─────────────────┘
//	                         ▼
//	               ┌──────────────────┐
//	               │    events.Bus    │
//	               │   (gochannel)    │
//	               └────────┬─────────┘
//	                        │
//	           ┌────────────┼────────────┐
//	           ▼            ▼            ▼
//	    ┌───────────┐ ┌──────────┐ ┌──────────┐
//	    │ WebSocket │ │ History  │ │  Tests   │
//	    │  Bridge   │ │ Recorder │ │          │
//	    └───────────┘ └──────────┘ └──────────┘
//
// # Event Contract
//
// Each event type carries an EventID (UUID) and a UTC Timestamp,
// assigned by its constructor. Events implement Validate; the bus
// refuses to publish events that fail validation and counts them as
// dropped. Payloads are JSON on the wire so the websocket bridge can
// forward them to browsers without re-encoding.
//
// # Delivery Semantics
//
// The bus is purely in-process. Delivery is at-most-once per
// subscriber: a subscriber that falls more than BufferSize messages
// behind blocks the publishing goroutine, so consumers are expected to
// drain promptly and do real work elsewhere. There is no persistence
// and no replay in production wiring; the Persistent flag exists for
// tests that subscribe after publishing.
//
// Topics are enumerated in Topics. SubscribeAll merges all of them
// into one stream for bridge-style consumers.
package events

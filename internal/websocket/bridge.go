// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package websocket

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/danarhys/cognatus/internal/events"
	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// Bridge forwards every bus event to connected websocket clients, so
// the UI sees discovery progress, per-item failures, and comparison
// completions live. Messages keep their bus topic as the websocket
// message type and their payload verbatim.
type Bridge struct {
	bus *events.Bus
	hub *Hub
}

// NewBridge creates a bridge between the event bus and the hub.
func NewBridge(bus *events.Bus, hub *Hub) *Bridge {
	return &Bridge{bus: bus, hub: hub}
}

// Serve subscribes to all topics and forwards until the context ends
// or the bus closes. Every message is Acked: the websocket stream is
// fire-and-forget observability, so there is nothing to retry into.
//
// Implements suture.Service.
func (b *Bridge) Serve(ctx context.Context) error {
	messages, err := b.bus.SubscribeAll(ctx)
	if err != nil {
		return err
	}

	logging.Info().Msg("websocket event bridge started")

	for {
		select {
		case <-ctx.Done():
			logging.Info().Str("component", "event-bridge").Msg("websocket event bridge stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				// Bus closed; a supervisor restart resubscribes.
				logging.Info().Msg("event bus closed, stopping websocket bridge")
				return nil
			}

			topic := msg.Metadata.Get("topic")
			if topic == "" {
				metrics.RecordEventHandlerFailure("unknown")
				logging.Warn().Str("message_id", msg.UUID).Msg("bus message missing topic metadata")
				msg.Ack()
				continue
			}

			b.hub.BroadcastEvent(topic, json.RawMessage(msg.Payload))
			msg.Ack()
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (b *Bridge) String() string {
	return "websocket-event-bridge"
}

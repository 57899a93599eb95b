// Cognatus - Talent Discovery Analytics and Profile Similarity Engine
// Copyright 2026 Dana R. (danarhys)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/danarhys/cognatus

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/danarhys/cognatus/internal/logging"
	"github.com/danarhys/cognatus/internal/metrics"
)

// DefaultBufferSize is the per-subscriber channel buffer applied when
// the config leaves it zero.
const DefaultBufferSize = 256

// Config sizes the in-process bus. Persistent replays previously
// published messages to late subscribers; production wiring leaves it
// off, tests that subscribe after publishing turn it on.
type Config struct {
	BufferSize int64
	Persistent bool
}

// Bus is the in-process event channel. Discovery failures, skips, and
// completions flow through it so observers (websocket bridge, tests,
// logs) see pipeline internals without the pipeline knowing about
// them. Publishing never blocks the caller beyond the subscriber
// buffer.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus builds a bus over a watermill gochannel pubsub with the
// zerolog-backed logger adapter.
func NewBus(cfg Config) *Bus {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
			Persistent:          cfg.Persistent,
		}, NewLoggerAdapter()),
	}
}

// Publish validates, serializes, and routes an event to its topic.
// Failures count as dropped events; the caller decides whether a drop
// matters (observability publishers typically ignore the error).
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if ev == nil {
		return fmt.Errorf("publish: nil event")
	}
	topic := ev.Topic()

	if err := ev.Validate(); err != nil {
		metrics.RecordEventDropped(topic)
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		metrics.RecordEventDropped(topic)
		return fmt.Errorf("publish %s: marshal: %w", topic, err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("topic", topic)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		metrics.RecordEventDropped(topic)
		logging.Warn().Err(err).Str("topic", topic).Msg("event publish failed")
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	metrics.RecordEventPublished(topic)
	return nil
}

// Subscribe returns the message stream for one topic. The channel
// closes when ctx is canceled or the bus shuts down. Messages must be
// Acked or Nacked by the consumer.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// SubscribeAll merges every known topic into a single stream, in the
// service of bridges that forward the whole bus (websocket). The
// merged channel closes once all topic streams do.
func (b *Bus) SubscribeAll(ctx context.Context) (<-chan *message.Message, error) {
	out := make(chan *message.Message, len(Topics))
	var wg sync.WaitGroup

	for _, topic := range Topics {
		ch, err := b.pubsub.Subscribe(ctx, topic)
		if err != nil {
			return nil, fmt.Errorf("subscribe %s: %w", topic, err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range ch {
				out <- msg
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()
	return out, nil
}

// Close shuts the bus down and closes every subscriber channel.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// Decode unmarshals a bus message into a typed event.
func Decode[T any](msg *message.Message) (*T, error) {
	var ev T
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &ev, nil
}

// FetchFailureSink adapts the bus to the genome cache's failure hook.
// A zero sink is a no-op, so wiring can pass it unconditionally.
type FetchFailureSink struct {
	Bus *Bus
}

// GenomeFetchFailed publishes a genome.fetch.failed event. Publish
// errors are already counted and logged by the bus.
func (s FetchFailureSink) GenomeFetchFailed(ctx context.Context, username string, err error) {
	if s.Bus == nil {
		return
	}
	_ = s.Bus.Publish(ctx, NewGenomeFetchFailed(username, err))
}

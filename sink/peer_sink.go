package sink

import (
	"context"
	"qkd-ledger/domain/event"
)

// PeerSink buffers events for one connected peer.
// The connection handler owns the channel and writes to the wire.
type PeerSink struct {
	Events chan event.DomainEvent
}

func NewPeerSink(bufferSize int) *PeerSink {
	return &PeerSink{Events: make(chan event.DomainEvent, bufferSize)}
}

func (s *PeerSink) Name() string { return "peer" }

// Consume is called by fanout
// Redirect the event through the concerned owner of the channel
func (s *PeerSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package workers

import (
	"context"
	"log/slog"
	"qkd-ledger/contract"
	"qkd-ledger/domain/event"
	"time"
)

var _ contract.Worker = (*EventFanout)(nil)

// FailureHook is told about every sink that failed to consume an event.
type FailureHook func(sink contract.EventSink, err error)

// EventFanout broadcasts domain events to the permanent sinks and to every
// connected peer.
//
// Sinks are called one after the other in event order, each bounded by the
// sink timeout. A failing sink is logged and skipped: the ledger already holds
// the transaction, so delivery problems never reach the core.
type EventFanout struct {
	log         *slog.Logger
	sinks       []contract.EventSink
	registry    contract.IRegistry
	events      <-chan event.DomainEvent
	sinkTimeout time.Duration
	onFailure   FailureHook
}

func NewEventFanout(log *slog.Logger, sinks []contract.EventSink, registry contract.IRegistry,
	events <-chan event.DomainEvent, sinkTimeout time.Duration, onFailure FailureHook) *EventFanout {
	return &EventFanout{
		log:         log,
		sinks:       sinks,
		registry:    registry,
		events:      events,
		sinkTimeout: sinkTimeout,
		onFailure:   onFailure,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Event channel closed")
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, draining fanout")
			w.Drain(ctx)
			return nil
		}
	}
}

// Drain delivers every event still buffered, without waiting for new ones.
// Each sink keeps its own timeout, so a stuck sink cannot hold the drain forever.
func (w *EventFanout) Drain(ctx context.Context) int {
	drained := 0
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				return drained
			}
			w.Fanout(ctx, evt)
			drained++
		default:
			if drained > 0 {
				w.log.Info("Buffered events delivered before stopping", "count", drained)
			}
			return drained
		}
	}
}

// Fanout One sink for each event
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	sinks := w.sinks
	if w.registry != nil {
		sinks = append(append([]contract.EventSink(nil), sinks...), w.registry.GetPeerSinks()...)
	}
	for _, sink := range sinks {
		w.consume(ctx, sink, evt)
	}
}

// consume is bounded by the sink timeout only: cancelling the worker stops the
// loop, never a delivery in flight.
func (w *EventFanout) consume(ctx context.Context, sink contract.EventSink, evt event.DomainEvent) {
	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.sinkTimeout)
	defer cancel()
	if err := sink.Consume(sinkCtx, evt); err != nil {
		w.log.Warn("Sink failed to consume event", "sink", sinkName(sink), "error", err)
		if w.onFailure != nil {
			w.onFailure(sink, err)
		}
	}
}

func sinkName(sink contract.EventSink) string {
	if named, ok := sink.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "anonymous"
}

package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"qkd-ledger/contract"
	"qkd-ledger/domain/event"
	"qkd-ledger/runtime/workers"
	"sync"
	"time"
)

var _ contract.EventPublisher = (*Orchestrator)(nil)

// Orchestrator moves session events to collaborators.
// It owns the event buffer, the supervised fan-out and the peer registry.
type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	permanentSinks []contract.EventSink
	supervisor     contract.ISupervisor
	registry       contract.IRegistry
	events         chan event.DomainEvent
	sinkTimeout    time.Duration
	onFailure      workers.FailureHook
	fanout         *workers.EventFanout
	cancel         context.CancelFunc
	done           chan struct{}
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, registry contract.IRegistry,
	bufferSize int, sinkTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:         log,
		supervisor:  supervisor,
		registry:    registry,
		events:      make(chan event.DomainEvent, bufferSize),
		sinkTimeout: sinkTimeout,
	}
}

// Add registers collaborators notified of every event. Call it before Start.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// OnSinkFailure installs a hook told about every failed delivery. Call it before Start.
func (o *Orchestrator) OnSinkFailure(hook workers.FailureHook) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onFailure = hook
}

// Publish never blocks the session: when the buffer is full the notification is dropped.
func (o *Orchestrator) Publish(evt event.DomainEvent) {
	select {
	case o.events <- evt:
	default:
		o.log.Warn(fmt.Sprintf("Event buffer full, dropping %T", evt))
	}
}

// EventBuffer exposes the event channel to capacity sampling.
func (o *Orchestrator) EventBuffer() workers.NamedChannel {
	return workers.NamedChannel{Name: "events", Channel: o.events}
}

func (o *Orchestrator) RegisterPeer(peerID string, sink contract.EventSink) {
	o.registry.Subscribe(peerID, sink)
}

func (o *Orchestrator) UnregisterPeer(peerID string) {
	o.registry.Unsubscribe(peerID)
}

// Start launches the supervised fan-out and returns immediately.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.done != nil {
		o.mu.Unlock()
		return fmt.Errorf("orchestrator already started")
	}
	o.fanout = workers.NewEventFanout(o.log, append([]contract.EventSink(nil), o.permanentSinks...),
		o.registry, o.events, o.sinkTimeout, o.onFailure)
	o.supervisor.Add(o.fanout)
	ctx, o.cancel = context.WithCancel(ctx)
	o.done = make(chan struct{})
	done := o.done
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers", "sinks", len(o.permanentSinks))
	go func() {
		defer close(done)
		o.supervisor.Run(ctx)
	}()
	return nil
}

// Stop cancels the workers, waits for them to return, then delivers whatever
// is still buffered so that no published event is lost.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()

	o.mu.Lock()
	done, fanout := o.done, o.fanout
	if o.cancel != nil {
		o.cancel()
	}
	o.mu.Unlock()
	if done != nil {
		<-done
	}
	// The fanout may have been cancelled before it ever ran
	if fanout != nil {
		fanout.Drain(context.Background())
	}
	o.log.Debug("Orchestrator stopped")
}

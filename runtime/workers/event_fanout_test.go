package workers

import (
	"context"
	"errors"
	"log/slog"
	"qkd-ledger/contract"
	"qkd-ledger/domain"
	"qkd-ledger/domain/event"
	"qkd-ledger/mocks"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func appendedEvent(index int, message string) event.TransactionAppended {
	tx := domain.Transaction{Message: message, CreatedAt: time.Now()}
	return event.TransactionAppended{Index: index, Transaction: tx, Chain: []domain.Block{{Index: index, Transaction: tx}}}
}

func TestEventFanout_Fanout_PermanentAndPeerSinks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRegistry := mocks.NewMockIRegistry(ctrl)
	permanentSink := mocks.NewMockEventSink(ctrl)
	peerSink := mocks.NewMockEventSink(ctrl)
	evt := appendedEvent(1, "hello")

	// Given one permanent sink and one connected peer
	mockRegistry.EXPECT().GetPeerSinks().Return([]contract.EventSink{peerSink}).Times(1)
	permanentSink.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)
	peerSink.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

	fanout := NewEventFanout(log, []contract.EventSink{permanentSink}, mockRegistry, nil, time.Second, nil)

	// When an event is fanned out
	fanout.Fanout(context.Background(), evt)

	// Then both were consumed once
	req.NotNil(fanout)
}

func TestEventFanout_FailingSinkDoesNotStopOthers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockEventSink(ctrl)
	healthy := mocks.NewMockEventSink(ctrl)
	evt := appendedEvent(1, "hello")

	failing.EXPECT().Consume(gomock.Any(), evt).Return(errors.New("disk full")).Times(1)
	healthy.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

	var failures []error
	fanout := NewEventFanout(slog.Default(), []contract.EventSink{failing, healthy}, nil, nil, time.Second,
		func(_ contract.EventSink, err error) { failures = append(failures, err) })

	fanout.Fanout(context.Background(), evt)

	req.Len(failures, 1)
	req.EqualError(failures[0], "disk full")
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	slowSink := mocks.NewMockEventSink(ctrl)
	evt := appendedEvent(1, "hello")

	// Given a sink waiting for its context
	slowSink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ event.DomainEvent) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)

	var failure error
	fanout := NewEventFanout(slog.Default(), []contract.EventSink{slowSink}, nil, nil, 20*time.Millisecond,
		func(_ contract.EventSink, err error) { failure = err })

	start := time.Now()
	fanout.Fanout(context.Background(), evt)

	// Then the deadline released the worker
	req.ErrorIs(failure, context.DeadlineExceeded)
	req.Less(time.Since(start), time.Second)
}

func TestEventFanout_Run_PreservesOrder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockEventSink(ctrl)
	events := make(chan event.DomainEvent, 3)
	received := make(chan int, 3)

	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.DomainEvent) error {
			received <- e.(event.TransactionAppended).Index
			return nil
		}).
		Times(3)

	fanout := NewEventFanout(slog.Default(), []contract.EventSink{sink}, nil, events, time.Second, nil)
	for i := 1; i <= 3; i++ {
		events <- appendedEvent(i, "m")
	}
	close(events)

	// When the worker drains a closed channel it returns cleanly
	req.NoError(fanout.Run(context.Background()))
	req.Equal(1, <-received)
	req.Equal(2, <-received)
	req.Equal(3, <-received)
}

func TestEventFanout_Run_DrainsOnCancel(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockEventSink(ctrl)
	events := make(chan event.DomainEvent, 3)
	for i := 1; i <= 3; i++ {
		events <- appendedEvent(i, "m")
	}

	// Given buffered events and a context already cancelled
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ event.DomainEvent) error {
			// Sinks still get a live context while draining
			return ctx.Err()
		}).
		Times(3)
	var failures int
	fanout := NewEventFanout(slog.Default(), []contract.EventSink{sink}, nil, events, time.Second,
		func(contract.EventSink, error) { failures++ })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When the worker runs, it delivers them all before returning
	req.NoError(fanout.Run(ctx))
	req.Empty(events)
	req.Zero(failures)
	req.Zero(fanout.Drain(context.Background()))
}

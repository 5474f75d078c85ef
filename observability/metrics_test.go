package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"qkd-ledger/domain"
	"qkd-ledger/domain/event"
	"qkd-ledger/sink"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Consume(t *testing.T) {
	req := require.New(t)
	metrics := NewMetrics()
	ctx := context.Background()

	req.NoError(metrics.Consume(ctx, event.SecretEstablished{Generated: 16, Sifted: 9, Length: 9}))
	req.NoError(metrics.Consume(ctx, event.TransactionAppended{
		Index:       1,
		Transaction: domain.Transaction{SenderID: domain.FirstNode, Verification: domain.Verified},
	}))
	req.NoError(metrics.Consume(ctx, event.TransactionAppended{
		Index:       2,
		Transaction: domain.Transaction{SenderID: domain.SecondNode, Verification: domain.Verified},
	}))

	req.Equal(1.0, testutil.ToFloat64(metrics.agreements))
	req.Equal(9.0, testutil.ToFloat64(metrics.secretLength))
	req.Equal(2.0, testutil.ToFloat64(metrics.ledgerHeight))
	req.Equal(1.0, testutil.ToFloat64(metrics.transactions.WithLabelValues("Node 1", "Verified")))
	req.Equal(1.0, testutil.ToFloat64(metrics.transactions.WithLabelValues("Node 2", "Verified")))
}

func TestMetrics_SinkFailedAndPeers(t *testing.T) {
	req := require.New(t)
	metrics := NewMetrics()

	metrics.SinkFailed(sink.NewPeerSink(1), errors.New("gone"))
	metrics.PeerConnected()
	metrics.PeerConnected()
	metrics.PeerDisconnected()

	req.Equal(1.0, testutil.ToFloat64(metrics.sinkFailures.WithLabelValues("peer")))
	req.Equal(1.0, testutil.ToFloat64(metrics.connectedPeersGauge))
}

func TestMetrics_WorkersAndChannels(t *testing.T) {
	req := require.New(t)
	metrics := NewMetrics()

	metrics.WorkerRestarted("EventFanout", errors.New("boom"))
	metrics.WorkerRestarted("EventFanout", errors.New("boom"))
	metrics.RecordChannelUsage("events", 3, 100)

	req.Equal(2.0, testutil.ToFloat64(metrics.workerRestarts.WithLabelValues("EventFanout")))
	req.Equal(3.0, testutil.ToFloat64(metrics.channelLength.WithLabelValues("events")))
	req.Equal(100.0, testutil.ToFloat64(metrics.channelCapacity.WithLabelValues("events")))
}

func TestMetrics_Handler(t *testing.T) {
	req := require.New(t)
	metrics := NewMetrics()
	metrics.SetLedgerHeight(7)

	recorder := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	req.Equal(http.StatusOK, recorder.Code)
	req.Contains(recorder.Body.String(), "qkd_ledger_ledger_height 7")
}

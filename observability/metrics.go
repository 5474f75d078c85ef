package observability

import (
	"context"
	"net/http"
	"qkd-ledger/contract"
	"qkd-ledger/domain/event"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "qkd_ledger"

// Metrics turns session events into prometheus series.
type Metrics struct {
	registry            *prometheus.Registry
	agreements          prometheus.Counter
	secretLength        prometheus.Gauge
	siftedBits          prometheus.Histogram
	transactions        *prometheus.CounterVec
	ledgerHeight        prometheus.Gauge
	sinkFailures        *prometheus.CounterVec
	connectedPeersGauge prometheus.Gauge
	workerRestarts      *prometheus.CounterVec
	channelLength       *prometheus.GaugeVec
	channelCapacity     *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		agreements: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agreements_total",
			Help:      "Key agreements run since start.",
		}),
		secretLength: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "shared_secret_length_bits",
			Help:      "Length of the shared secret in effect.",
		}),
		siftedBits: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sifted_bits",
			Help:      "Positions kept by sifting, before truncation.",
			Buckets:   prometheus.LinearBuckets(0, 4, 9),
		}),
		transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Transactions appended to the ledger.",
		}, []string{"sender", "verification"}),
		ledgerHeight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_height",
			Help:      "Number of blocks in the ledger.",
		}),
		sinkFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_failures_total",
			Help:      "Events a collaborator failed to consume.",
		}, []string{"sink"}),
		connectedPeersGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_peers",
			Help:      "Peers currently receiving pushes.",
		}),
		workerRestarts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_restarts_total",
			Help:      "Supervised worker restarts after a crash.",
		}, []string{"worker"}),
		channelLength: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_length",
			Help:      "Buffered items in an internal channel.",
		}, []string{"channel"}),
		channelCapacity: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_capacity",
			Help:      "Capacity of an internal channel.",
		}, []string{"channel"}),
	}
}

func (m *Metrics) Name() string { return "metrics" }

func (m *Metrics) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.SecretEstablished:
		m.agreements.Inc()
		m.secretLength.Set(float64(evt.Length))
		m.siftedBits.Observe(float64(evt.Sifted))
	case event.TransactionAppended:
		m.transactions.WithLabelValues(evt.Transaction.SenderID.NodeName(), string(evt.Transaction.Verification)).Inc()
		m.ledgerHeight.Set(float64(evt.Index))
	}
	return nil
}

// SetLedgerHeight is used after history is restored from disk.
func (m *Metrics) SetLedgerHeight(height int) {
	m.ledgerHeight.Set(float64(height))
}

func (m *Metrics) SinkFailed(sink contract.EventSink, _ error) {
	name := "anonymous"
	if named, ok := sink.(interface{ Name() string }); ok {
		name = named.Name()
	}
	m.sinkFailures.WithLabelValues(name).Inc()
}

func (m *Metrics) WorkerRestarted(workerName string, _ error) {
	m.workerRestarts.WithLabelValues(workerName).Inc()
}

func (m *Metrics) RecordChannelUsage(name string, length, capacity int) {
	m.channelLength.WithLabelValues(name).Set(float64(length))
	m.channelCapacity.WithLabelValues(name).Set(float64(capacity))
}

func (m *Metrics) PeerConnected()    { m.connectedPeersGauge.Inc() }
func (m *Metrics) PeerDisconnected() { m.connectedPeersGauge.Dec() }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package server

import (
	"context"
	"log/slog"
	"net"
	"qkd-ledger/domain/event"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestHealthServer_ServingOnceSecretEstablished(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	healthServer := NewHealthServer(slog.Default())
	check := &healthpb.HealthCheckRequest{Service: SessionService}

	resp, err := healthServer.health.Check(ctx, check)
	req.NoError(err)
	req.Equal(healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	// Appended blocks do not change the status
	req.NoError(healthServer.Consume(ctx, event.TransactionAppended{Index: 1}))
	resp, err = healthServer.health.Check(ctx, check)
	req.NoError(err)
	req.Equal(healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	req.NoError(healthServer.Consume(ctx, event.SecretEstablished{Length: 8}))
	resp, err = healthServer.health.Check(ctx, check)
	req.NoError(err)
	req.Equal(healthpb.HealthCheckResponse_SERVING, resp.Status)

	healthServer.Shutdown()
	resp, err = healthServer.health.Check(ctx, check)
	req.NoError(err)
	req.Equal(healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestNewGRPCServer_ExposesHealth(t *testing.T) {
	req := require.New(t)
	listener := bufconn.Listen(1024 * 1024)
	healthServer := NewHealthServer(slog.Default())
	healthServer.MarkServing()
	s := NewGRPCServer(slog.Default(), healthServer)
	go func() { _ = s.Serve(listener) }()
	defer s.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	req.NoError(err)
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: SessionService})
	req.NoError(err)
	req.Equal(healthpb.HealthCheckResponse_SERVING, resp.Status)
}

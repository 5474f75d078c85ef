package server

import (
	"context"
	"log/slog"
	"qkd-ledger/domain/event"

	sdkgrpc "github.com/mama165/sdk-go/grpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// SessionService is the name health checks use to ask whether the session can sign.
const SessionService = "qkd.ledger.Session"

// HealthServer reports NOT_SERVING for the session until a shared secret
// has been established, SERVING afterwards.
type HealthServer struct {
	health *health.Server
	log    *slog.Logger
}

func NewHealthServer(log *slog.Logger) *HealthServer {
	h := health.NewServer()
	h.SetServingStatus(SessionService, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{health: h, log: log}
}

func (h *HealthServer) Name() string { return "health" }

func (h *HealthServer) Consume(_ context.Context, e event.DomainEvent) error {
	if _, ok := e.(event.SecretEstablished); ok {
		h.MarkServing()
	}
	return nil
}

func (h *HealthServer) MarkServing() {
	h.health.SetServingStatus(SessionService, healthpb.HealthCheckResponse_SERVING)
}

// Shutdown flips every service to NOT_SERVING so health checks stop routing here.
func (h *HealthServer) Shutdown() {
	h.log.Info("Health service going down")
	h.health.Shutdown()
}

// NewGRPCServer builds the gRPC server exposing the health service.
func NewGRPCServer(log *slog.Logger, healthServer *HealthServer) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(sdkgrpc.UnaryLoggingInterceptor(log)))
	healthpb.RegisterHealthServer(s, healthServer.health)
	return s
}

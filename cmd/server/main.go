package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	grpcserver "qkd-ledger/infrastructure/grpc/server"
	httpserver "qkd-ledger/infrastructure/http/server"
	"qkd-ledger/internal"
	"qkd-ledger/observability"
	"qkd-ledger/quantum"
	"qkd-ledger/repositories"
	"qkd-ledger/runtime"
	"qkd-ledger/runtime/workers"
	"qkd-ledger/search"
	"qkd-ledger/services"
	"qkd-ledger/sink"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 5 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component, serves until a signal or a server failure,
// then shuts down in reverse order. Deferred closes run before main exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Storage (BadgerDB) and search index (Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, TransactionMapper)
	}

	index, err := search.Open(config.BlugeFilepath, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = index.Close()
	}()

	repository := repositories.NewTransactionRepository(db, logger)
	history, err := repository.LoadAll()
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to load history: %w", err)
	}

	// 3. Supervision, orchestration and collaborators
	metrics := observability.NewMetrics()
	healthServer := grpcserver.NewHealthServer(logger)
	sup := workers.NewSupervisor(logger, config.RestartInterval)
	sup.OnRestart(metrics.WorkerRestarted)
	registry := runtime.NewRegistry()
	orchestrator := runtime.NewOrchestrator(logger, sup, registry, config.BufferSize, config.SinkTimeout)
	sup.Add(workers.NewChannelCapacityWorker(logger, []workers.NamedChannel{orchestrator.EventBuffer()},
		metrics.RecordChannelUsage, config.MetricInterval, config.LowCapacityThreshold))
	orchestrator.Add(
		sink.NewDiskSink(repository, logger),
		sink.NewExportSink(config.ExportFilepath, logger),
		sink.NewGraphSink(config.GraphFilepath, logger),
		sink.NewConsoleSink(logger),
		index,
		metrics,
		healthServer,
	)
	orchestrator.OnSinkFailure(metrics.SinkFailed)

	// 4. Session
	seed, _ := config.Seed() // checked by Validate
	simulator := quantum.NewSimulator(quantum.NewRandomSource(seed), config.QKDKeyLength)
	session := runtime.NewSession(logger, simulator, orchestrator, nil)
	if err := session.Restore(history); err != nil {
		return exitRuntime, err
	}
	metrics.SetLedgerHeight(session.Height())

	// 5. Context & Signals
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Start the engine, then agree on the first secret so every sink sees it.
	// The engine outlives the signal: it is stopped after the servers so that
	// blocks submitted during shutdown still reach disk.
	if err := orchestrator.Start(ctx); err != nil {
		return exitRuntime, fmt.Errorf("orchestrator failed to start: %w", err)
	}
	session.EstablishSharedSecret(config.QKDBits)

	errChan := make(chan error, 2)

	// 7. gRPC health
	grpcAddress := fmt.Sprintf("%s:%d", config.Host, config.GRPCHealthPort)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		orchestrator.Stop()
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", grpcAddress, err)
	}
	grpcServer := grpcserver.NewGRPCServer(logger, healthServer)
	go func() {
		logger.Info("Starting gRPC health server", "address", grpcAddress)
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 8. HTTP and websocket
	chatService := services.NewChatService(logger, session, orchestrator, index,
		config.QKDBits, config.MaxQKDBits, config.MaxMessageLength, config.SearchLimit)
	chatServer := httpserver.NewChatServer(logger, chatService, config.ConnectionBufferSize, metrics.Handler(), metrics)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           chatServer.Handler(config.AllowedOrigins()),
		ReadHeaderTimeout: shutdownTimeout,
	}
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 9. Wait for Stop or Error
	code := exitOK
	select {
	case <-signalCtx.Done():
		logger.Info("Shutdown signal received")
	case err = <-errChan:
		code = exitRuntime
	}

	// 10. Final Cleanup (Graceful Shutdown)
	logger.Info("Shutting down gracefully...")
	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("HTTP server did not stop cleanly", "error", shutdownErr)
	}
	grpcServer.GracefulStop()
	orchestrator.Stop()
	logger.Info("Program stopped cleanly")

	return code, err
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath).
		WithLogger(repositories.NewBadgerLogger(logger))

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

// Команда shortener запускает HTTP (и при необходимости gRPC) сервер сокращения URL.
// Ссылки хранятся в PostgreSQL, если задан DSN, иначе в памяти процесса.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tempizhere/compresseverything/internal/app"
	"github.com/tempizhere/compresseverything/internal/config"
	grpcserver "github.com/tempizhere/compresseverything/internal/grpc"
	"github.com/tempizhere/compresseverything/internal/log"
	"github.com/tempizhere/compresseverything/internal/metrics"
	"github.com/tempizhere/compresseverything/internal/repository"
	"github.com/tempizhere/compresseverything/internal/service"
	"github.com/tempizhere/compresseverything/internal/tracing"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const serviceName = "compresseverything"

func main() {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger, err := log.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// run поднимает зависимости и серверы и блокируется до отмены ctx
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.TraceEnabled {
		shutdownTracing, err := tracing.Setup(serviceName, os.Stdout)
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if ferr := shutdownTracing(sctx); ferr != nil {
				logger.Warn("Failed to flush traces", zap.Error(ferr))
			}
		}()
	}

	repo, closeRepo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	m := metrics.New()
	svc := service.NewService(repo, cfg.BaseURL, logger, service.WithMetrics(m))

	srv := &http.Server{
		Addr:              cfg.RunAddr,
		Handler:           app.NewRouter(app.NewApp(svc, logger, cfg.DBTimeout), logger, m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	var gs *grpc.Server
	var grpcLis net.Listener
	if cfg.GRPCAddr != "" {
		grpcLis, err = net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("listen gRPC: %w", err)
		}
		gs = grpcserver.NewGRPCServer(grpcserver.NewServer(svc, logger, cfg.DBTimeout), logger)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("address", cfg.RunAddr), zap.String("base_url", cfg.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})

	if gs != nil {
		g.Go(func() error {
			logger.Info("Starting gRPC server", zap.String("address", cfg.GRPCAddr))
			if err := gs.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("gRPC server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down servers")

		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if gs != nil {
			stopGRPC(sctx, gs)
		}
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("HTTP shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newRepository выбирает хранилище: PostgreSQL при заданном DSN, иначе память.
// Ошибка подключения или создания схемы прерывает запуск.
func newRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Repository, func(), error) {
	if cfg.DatabaseDSN == "" {
		logger.Info("DATABASE_DSN not set, using in-memory storage")
		return repository.NewMemoryRepository(), func() {}, nil
	}

	dctx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()

	db, err := app.NewDB(dctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := app.InitSchema(dctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create schema: %w", err)
	}
	logger.Info("Connected to PostgreSQL")

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	return repository.NewPostgresRepository(db, logger), closeDB, nil
}

// stopGRPC ждёт завершения активных вызовов, но не дольше ctx
func stopGRPC(ctx context.Context, gs *grpc.Server) {
	done := make(chan struct{})
	go func() {
		gs.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		gs.Stop()
	}
}

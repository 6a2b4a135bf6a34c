package main

import (
	"context"
	"errors"
	"github.com/Avi18971911/Lens/internal/config"
	"github.com/Avi18971911/Lens/internal/query_server/handler"
	"github.com/Avi18971911/Lens/internal/query_server/metrics"
	"github.com/Avi18971911/Lens/internal/query_server/router"
	"github.com/Avi18971911/Lens/internal/query_server/service/trace_view"
	layoutService "github.com/Avi18971911/Lens/pkg/layout/service"
	"github.com/Avi18971911/Lens/pkg/otel"
	requestService "github.com/Avi18971911/Lens/pkg/request/service"
	"github.com/Avi18971911/Lens/pkg/selection"
	"github.com/asaskevich/EventBus"
	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// @title Lens API
// @version 1.0
// @description Explores the traces of API requests as timelines, flame graphs and flowcharts.
// termsOfService: http://swagger.io/terms/
// contact:
//   name: API Support
//   url: http://www.swagger.io/support
//   email: support@swagger.io

// license:
//   name: Apache 2.0
//   url: http://www.apache.org/licenses/LICENSE-2.0.html

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	maxCost, err := cfg.Cache.GetMaxCost()
	if err != nil {
		logger.Fatal("Invalid cache configuration", zap.Error(err))
	}
	layoutCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.Cache.NumCounters,
		MaxCost:     maxCost,
		BufferItems: cfg.Cache.BufferItems,
	})
	if err != nil {
		logger.Fatal("Failed to create layout cache", zap.Error(err))
	}
	defer layoutCache.Close()

	m := metrics.NewMetrics()
	store := requestService.NewRequestStore(logger)
	if cfg.Data.LoadFixture {
		if err := store.LoadFixture(); err != nil {
			logger.Fatal("Failed to load sample requests", zap.Error(err))
		}
	}
	if cfg.Data.OtlpTraces != "" {
		importService := otel.NewImportService(logger)
		requests, err := importService.ImportFiles(cfg.Data.OtlpTraces, cfg.Data.OtlpLogs)
		if err != nil {
			logger.Fatal("Failed to import OTLP export", zap.Error(err))
		}
		if err := store.Add(requests...); err != nil {
			logger.Fatal("Failed to store imported requests", zap.Error(err))
		}
	}
	m.StoredRequests.Set(float64(store.Len()))
	logger.Info("Loaded requests", zap.Int("count", store.Len()))

	bus := EventBus.New()
	selectionState, err := selection.NewSelectionState(bus, store, logger)
	if err != nil {
		logger.Fatal("Failed to create selection state", zap.Error(err))
	}
	if err := m.CountSelectionChanges(bus, selectionState.Topics(), logger); err != nil {
		logger.Fatal("Failed to count selection changes", zap.Error(err))
	}

	tvs := trace_view.NewTraceViewService(store, layoutCache, layoutOptions(cfg.Layout), m, logger)
	r := router.CreateRouter(
		tvs,
		selectionState,
		handler.StreamOptions{
			WriteTimeout: cfg.WebSocket.GetWriteTimeoutDuration(),
			PingInterval: cfg.WebSocket.GetPingIntervalDuration(),
			SendBuffer:   cfg.WebSocket.SendBuffer,
		},
		m,
		logger,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.GetReadTimeoutDuration(),
		WriteTimeout: cfg.Server.GetWriteTimeoutDuration(),
	}

	go func() {
		logger.Info("Starting query server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down query server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down gracefully", zap.Error(err))
	}
	bus.WaitAsync()
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

func layoutOptions(cfg config.LayoutConfig) trace_view.Options {
	return trace_view.Options{
		Timeline: layoutService.TimelineOptions{
			Width:      cfg.Timeline.Width,
			RowHeight:  cfg.Timeline.RowHeight,
			BarHeight:  cfg.Timeline.BarHeight,
			TopPadding: cfg.Timeline.TopPadding,
		},
		Flamegraph: layoutService.FlamegraphOptions{
			Width:     cfg.Flamegraph.Width,
			RowHeight: cfg.Flamegraph.RowHeight,
			BarHeight: cfg.Flamegraph.BarHeight,
		},
		Flowchart: layoutService.FlowchartOptions{
			Width:      cfg.Flowchart.Width,
			Height:     cfg.Flowchart.Height,
			NodeWidth:  cfg.Flowchart.NodeWidth,
			NodeHeight: cfg.Flowchart.NodeHeight,
		},
	}
}

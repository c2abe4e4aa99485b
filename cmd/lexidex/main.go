package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lexidex/lexidex/internal/config"
	logpkg "github.com/lexidex/lexidex/internal/logger"
	"github.com/lexidex/lexidex/internal/metrics"
	"github.com/lexidex/lexidex/internal/repository/benchhist"
	"github.com/lexidex/lexidex/internal/repository/memindex"
	"github.com/lexidex/lexidex/internal/transport/httpapi"
	benchmarkuc "github.com/lexidex/lexidex/internal/usecase/benchmark"
	retrievaluc "github.com/lexidex/lexidex/internal/usecase/retrieval"
	"github.com/lexidex/lexidex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexidex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("default_top_k", cfg.Retrieval.DefaultTopK),
	)

	// Register retrieval metrics explicitly (no init())
	metrics.RegisterRetrievalMetrics()

	// Shared retrieval engine for the /retrieve endpoints
	engine := retrievaluc.New(memindex.New())

	// Adapter factories for automated benchmarks
	adapters := buildAdapters(cfg.Retrieval.Adapters)
	logger.Info("Benchmark adapters configured", zap.Int("count", len(adapters)))

	// Optional SQLite archive for benchmark results
	var archive benchmarkuc.Archiver
	opts := []benchmarkuc.AutomatedOption{
		benchmarkuc.WithHistoryLimit(cfg.Benchmark.HistoryLimit),
	}
	if cfg.Benchmark.ArchivePath != "" {
		store, err := benchhist.Open(cfg.Benchmark.ArchivePath)
		if err != nil {
			logger.Fatal("Failed to open benchmark archive", zap.Error(err))
		}
		defer func() { _ = store.Close() }()
		archive = store
		opts = append(opts, benchmarkuc.WithArchive(store))
		logger.Info("Benchmark archive enabled", zap.String("path", cfg.Benchmark.ArchivePath))
	}

	automated := benchmarkuc.NewAutomatedRunner(adapters, logger, opts...)

	server := httpapi.NewServer(
		engine, automated, archive, logger,
		cfg.Retrieval.DefaultTopK, cfg.Retrieval.MaxTopK,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(httpapi.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildAdapters maps configured adapter entries to engine factories, falling
// back to the stock set when none are configured.
func buildAdapters(entries []config.AdapterConfig) map[string]benchmarkuc.EngineFactory {
	if len(entries) == 0 {
		return benchmarkuc.DefaultAdapters()
	}
	adapters := make(map[string]benchmarkuc.EngineFactory, len(entries))
	for _, e := range entries {
		adapters[e.Name] = benchmarkuc.NewEngineFactory(e.TagBoost, e.SourceBoost)
	}
	return adapters
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/satark-ai/satark/internal/chunker"
	"github.com/satark-ai/satark/internal/config"
	dbRedis "github.com/satark-ai/satark/internal/db/redis"
	logpkg "github.com/satark-ai/satark/internal/logger"
	"github.com/satark-ai/satark/internal/metrics"
	indexrepo "github.com/satark-ai/satark/internal/repository/index"
	"github.com/satark-ai/satark/internal/statute"
	chiTransport "github.com/satark-ai/satark/internal/transport/chi"
	"github.com/satark-ai/satark/internal/transport/openai"
	healthuc "github.com/satark-ai/satark/internal/usecase/health"
	ingestuc "github.com/satark-ai/satark/internal/usecase/ingest"
	raguc "github.com/satark-ai/satark/internal/usecase/rag"
	retrievaluc "github.com/satark-ai/satark/internal/usecase/retrieval"
	"github.com/satark-ai/satark/internal/version"
)

func main() {
	// .env is optional, real deployments set variables directly
	_ = godotenv.Load()

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

	logger.Info("Starting satark API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Section mapping tables are a hard startup dependency: serving legal
	// queries with partial conversion data is worse than not starting.
	normalizer, err := statute.LoadTables(cfg.Statute.MappingsDir)
	if err != nil {
		logger.Fatal("Failed to load section mapping tables", zap.Error(err))
	}
	logger.Info("Section mapping tables loaded",
		zap.Int("ipc_to_bns", normalizer.TableSize(statute.IPC)),
		zap.Int("crpc_to_bnss", normalizer.TableSize(statute.CrPC)),
		zap.Int("iea_to_bsa", normalizer.TableSize(statute.IEA)),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterPipelineMetrics()

	embedder := openai.NewEmbedder(&openai.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	generator := openai.NewGenerator(&openai.GeneratorConfig{
		APIKey:  cfg.Generation.APIKey,
		BaseURL: cfg.Generation.BaseURL,
		Model:   cfg.Generation.Model,
		Logger:  logger,
	})
	logger.Info("Generator created", zap.String("model", cfg.Generation.Model))

	indexRepo := indexrepo.New(store, cfg.Embedding.Dimensions)
	if err := indexRepo.EnsureCollections(ctx); err != nil {
		logger.Fatal("Failed to ensure collections", zap.Error(err))
	}
	logger.Info("Collections ready")

	docChunker := chunker.New(chunker.Config{
		ChunkSize:    cfg.Chunker.ChunkSize,
		Overlap:      cfg.Chunker.Overlap,
		MaxChunkSize: cfg.Chunker.MaxChunkSize,
	})

	retrievalSvc, err := retrievaluc.New(
		indexRepo, indexRepo, embedder, cfg.Retrieval.VectorWeight, logger,
	)
	if err != nil {
		logger.Fatal("Failed to create retrieval service", zap.Error(err))
	}

	ragSvc := raguc.New(
		retrievalSvc, generator,
		cfg.Retrieval.VectorWeight, cfg.Retrieval.TopK, cfg.Retrieval.MaxContextTokens, logger,
	)
	ingestSvc := ingestuc.New(docChunker, normalizer, embedder, indexRepo, logger)
	healthSvc := healthuc.New(store, embedder, generator)

	server := chiTransport.NewServer(ragSvc, ingestSvc, normalizer, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/config"
	"github.com/kailas-cloud/scentdex/internal/db"
	dbMemory "github.com/kailas-cloud/scentdex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/scentdex/internal/db/redis"
	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
	logpkg "github.com/kailas-cloud/scentdex/internal/logger"
	"github.com/kailas-cloud/scentdex/internal/metrics"
	catalogrepo "github.com/kailas-cloud/scentdex/internal/repository/catalog"
	"github.com/kailas-cloud/scentdex/internal/repository/reccache"
	chiTransport "github.com/kailas-cloud/scentdex/internal/transport/chi"
	openaiGen "github.com/kailas-cloud/scentdex/internal/transport/openai"
	experienceuc "github.com/kailas-cloud/scentdex/internal/usecase/experience"
	explainuc "github.com/kailas-cloud/scentdex/internal/usecase/explain"
	healthuc "github.com/kailas-cloud/scentdex/internal/usecase/health"
	personalityuc "github.com/kailas-cloud/scentdex/internal/usecase/personality"
	recommenduc "github.com/kailas-cloud/scentdex/internal/usecase/recommend"
	scoringuc "github.com/kailas-cloud/scentdex/internal/usecase/scoring"
	similarityuc "github.com/kailas-cloud/scentdex/internal/usecase/similarity"
	"github.com/kailas-cloud/scentdex/internal/version"
)

func main() {
	seedPath := flag.String("seed", "", "path to a JSON catalog file to load on startup")
	flag.Parse()

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

	logger.Info("Starting scentdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create database store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	// Repositories
	catalog := catalogrepo.New(store)
	cache := reccache.New(store, metrics.RecommendationCacheTotal)

	if *seedPath != "" {
		n, err := seedCatalog(ctx, catalog, *seedPath)
		if err != nil {
			logger.Fatal("Failed to seed catalog", zap.String("path", *seedPath), zap.Error(err))
		}
		logger.Info("Catalog seeded", zap.String("path", *seedPath), zap.Int("items", n))
	}

	// Generation provider: nil disables the generative tiers, leaving the
	// template tier as the only one.
	var provider explainuc.Generator
	var genChecker healthuc.GenerationChecker
	if cfg.Generation.Provider != "" && cfg.Generation.APIKey != "" {
		gen := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:      cfg.Generation.APIKey,
			BaseURL:     cfg.Generation.BaseURL,
			Model:       cfg.Generation.Model,
			Temperature: cfg.Generation.Temperature,
			Provider:    cfg.Generation.Provider,
			Logger:      logger,
		})
		provider = gen
		genChecker = gen
		logger.Info("Generation provider created",
			zap.String("provider", cfg.Generation.Provider),
			zap.String("model", cfg.Generation.Model),
		)
	} else {
		logger.Warn("No generation provider configured, explanations are template-only")
	}

	// Use case services
	analyzer := personalityuc.New(quiz.DefaultMapping())
	searcher := similarityuc.New(catalog)
	scorer := scoringuc.New(scoringuc.Weights{
		Similarity:    cfg.Engine.Weights.Similarity,
		AccordOverlap: cfg.Engine.Weights.AccordOverlap,
		BrandAffinity: cfg.Engine.Weights.BrandAffinity,
		Availability:  cfg.Engine.Weights.Availability,
	})
	classifier := experienceuc.New(classifierConfig(cfg.Engine.Classifier))
	explainer := explainuc.New(provider, explainuc.Budgets{
		BeginnerMax:     cfg.Engine.Budgets.BeginnerMax,
		IntermediateMax: cfg.Engine.Budgets.IntermediateMax,
		AdvancedMax:     cfg.Engine.Budgets.AdvancedMax,
		Tolerance:       cfg.Engine.Budgets.Tolerance,
	}, time.Duration(cfg.Generation.TimeoutSec)*time.Second)

	engine := recommenduc.New(analyzer, searcher, scorer, classifier, explainer, cache, recommenduc.Config{
		MinCandidates: cfg.Engine.MinCandidates,
		ExplainBudget: time.Duration(cfg.Engine.ExplainBudgetMS) * time.Millisecond,
		GuestTTL:      time.Duration(cfg.Engine.GuestTTLSec) * time.Second,
		UserTTL:       time.Duration(cfg.Engine.UserTTLSec) * time.Second,
	})

	// Health service
	healthSvc := healthuc.New(store, genChecker)

	// Create chi server
	server := chiTransport.NewServer(engine, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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

func classifierConfig(cc config.ClassifierConfig) experienceuc.Config {
	cfg := experienceuc.DefaultConfig()
	if cc.ExplicitQuestionID != "" {
		cfg.ExplicitQuestionID = cc.ExplicitQuestionID
	}
	if len(cc.BeginnerIndicators) > 0 {
		cfg.BeginnerIndicators = cc.BeginnerIndicators
	}
	if len(cc.AdvancedIndicators) > 0 {
		cfg.AdvancedIndicators = cc.AdvancedIndicators
	}
	if cc.HistoryIntermediateMin > 0 {
		cfg.HistoryIntermediateMin = cc.HistoryIntermediateMin
	}
	if cc.HistoryAdvancedMin > 0 {
		cfg.HistoryAdvancedMin = cc.HistoryAdvancedMin
	}
	return cfg
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

			// Canonical log line, one per request
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

// seedRecord mirrors the catalog ingestion file layout.
type seedRecord struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand"`
	BrandTier       string    `json:"brand_tier"`
	Embedding       []float32 `json:"embedding"`
	Accords         []string  `json:"accords"`
	SampleAvailable bool      `json:"sample_available"`
	SamplePriceUSD  float64   `json:"sample_price_usd"`
	PriceTier       string    `json:"price_tier"`
	RatingValue     float64   `json:"rating_value"`
	RatingCount     int       `json:"rating_count"`
}

// seedCatalog loads fragrance records from a JSON array file.
func seedCatalog(ctx context.Context, catalog *catalogrepo.Repo, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	for _, rec := range records {
		item := domain.FragranceItem{
			ID:              rec.ID,
			Name:            rec.Name,
			Brand:           rec.Brand,
			BrandTier:       domain.PriceTier(rec.BrandTier),
			Embedding:       rec.Embedding,
			Accords:         rec.Accords,
			SampleAvailable: rec.SampleAvailable,
			SamplePriceUSD:  rec.SamplePriceUSD,
			PriceTier:       domain.PriceTier(rec.PriceTier),
			RatingValue:     rec.RatingValue,
			RatingCount:     rec.RatingCount,
		}
		if err := catalog.Upsert(ctx, item); err != nil {
			return 0, fmt.Errorf("upsert %s: %w", rec.ID, err)
		}
	}

	return len(records), nil
}

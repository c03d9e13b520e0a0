package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/pitchlab/salestrainer/cmd/mainconfig"
	"github.com/pitchlab/salestrainer/internal/api/router"
	appconfig "github.com/pitchlab/salestrainer/internal/config"
	"github.com/pitchlab/salestrainer/internal/observability/metrics"
	"github.com/pitchlab/salestrainer/internal/persona"
	"github.com/pitchlab/salestrainer/internal/scoring"
	"github.com/pitchlab/salestrainer/internal/simulation"
	scoringworker "github.com/pitchlab/salestrainer/internal/worker/scoring"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting salestrainer API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"llm_provider", cfg.LLMProvider,
	)

	registry := persona.NewRegistry()

	promReg := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(promReg)
	scoringMetrics := metrics.NewScoringMetrics(promReg)
	metricsHandler := promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})

	llmClient, err := buildLLMClient(cfg, logger)
	if err != nil {
		logger.Error("failed to build LLM client", "error", err)
		os.Exit(1)
	}

	sessionStore := buildSessionStore(cfg, logger)

	engine := simulation.NewEngine(registry, llmClient, logger.Component("simulation"),
		simulation.WithLLMTimeout(cfg.LLMTimeout),
		simulation.WithGenerationParams(generationParams(cfg)),
		simulation.WithMetrics(engineMetrics),
		simulation.WithSessionStore(sessionStore),
	)

	archive, err := scoring.OpenArchive(cfg.ScoreDBPath)
	if err != nil {
		logger.Error("failed to open score archive", "path", cfg.ScoreDBPath, "error", err)
		os.Exit(1)
	}
	defer archive.Close()

	scoringOpts := []scoring.EngineOption{
		scoring.WithAnalystTimeout(cfg.AnalystTimeout),
		scoring.WithMetrics(scoringMetrics),
	}
	if cfg.OpenAIAPIKey != "" {
		analystClient := openai.NewClient(cfg.OpenAIAPIKey)
		scoringOpts = append(scoringOpts, scoring.WithAnalyst(scoring.NewOpenAIAnalyst(analystClient, cfg.AnalystModel)))
	} else {
		logger.Warn("no OpenAI API key configured, coaching reports will be deterministic only")
	}
	scorer := scoring.NewEngine(registry, logger.Component("scoring"), scoringOpts...)

	queue := scoringworker.NewMemoryQueue(cfg.QueueBufferSize)
	worker := scoringworker.NewWorker(scorer, queue, archive, logger.Component("scoringworker"),
		scoringworker.WithWorkerCount(cfg.WorkerCount),
		scoringworker.WithReceiveWaitSeconds(cfg.ReceiveWaitSecs),
		scoringworker.WithReceiveBatchSize(cfg.ReceiveBatchSize),
	)

	r := router.New(&router.Config{
		Logger:             logger.Component("http"),
		SimulationHandler:  simulation.NewHandler(engine, logger.Component("simulation")),
		ScoringHandler:     scoringworker.NewHandler(worker, archive, logger.Component("scoring")),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSec:    cfg.RateLimitPerSec,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := worker.Shutdown(ctx); err != nil {
		logger.Error("scoring worker forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

// buildLLMClient selects the reply generator from configuration. The
// "fallback" provider chains OpenAI in front of Bedrock so a single upstream
// outage degrades rather than stops practice calls.
func buildLLMClient(cfg *appconfig.Config, logger *logging.Logger) (simulation.LLMClient, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openAIClient(cfg)
	case "bedrock":
		return bedrockClient(cfg)
	case "fallback":
		primary, err := openAIClient(cfg)
		if err != nil {
			return nil, err
		}
		secondary, err := bedrockClient(cfg)
		if err != nil {
			return nil, err
		}
		return simulation.NewFallbackLLMClient(primary, secondary, logger.Component("llm")), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func openAIClient(cfg *appconfig.Config) (simulation.LLMClient, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %q", cfg.LLMProvider)
	}
	return simulation.NewOpenAILLMClient(openai.NewClient(cfg.OpenAIAPIKey)), nil
}

func bedrockClient(cfg *appconfig.Config) (simulation.LLMClient, error) {
	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return simulation.NewBedrockLLMClient(bedrockruntime.NewFromConfig(awsCfg)), nil
}

func buildSessionStore(cfg *appconfig.Config, logger *logging.Logger) simulation.SessionStore {
	if cfg.UseMemoryStore {
		logger.Info("using in-memory session store")
		return simulation.NewMemorySessionStore()
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	logger.Info("using redis session store", "addr", cfg.RedisAddr)
	return simulation.NewRedisSessionStore(redis.NewClient(opts), cfg.SessionTTL)
}

func generationParams(cfg *appconfig.Config) simulation.GenerationParams {
	model := cfg.LLMModel
	if model == "" {
		switch cfg.LLMProvider {
		case "bedrock":
			model = cfg.BedrockModelID
		default:
			model = openai.GPT4oMini
		}
	}
	return simulation.GenerationParams{
		Model:       model,
		MaxTokens:   int32(cfg.LLMMaxTokens),
		Temperature: float32(cfg.LLMTemperature),
		TopP:        1,
	}
}

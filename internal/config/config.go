package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Simulation engine
	LLMProvider    string // openai | bedrock | fallback
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeout     time.Duration
	SessionTTL     time.Duration

	// OpenAI
	OpenAIAPIKey string

	// AWS Bedrock
	AWSRegion           string
	AWSEndpointOverride string
	BedrockModelID      string

	// Session store
	UseMemoryStore bool
	RedisAddr      string
	RedisPassword  string
	RedisTLS       bool

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimitPerSec    float64
	RateLimitBurst     int

	// Scoring
	ScoreDBPath      string
	AnalystModel     string
	AnalystTimeout   time.Duration
	WorkerCount      int
	QueueBufferSize  int
	ReceiveWaitSecs  int
	ReceiveBatchSize int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LLMProvider:    strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", "openai"))),
		LLMModel:       getEnv("LLM_MODEL", ""),
		LLMMaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 256),
		LLMTemperature: getEnvAsFloat("LLM_TEMPERATURE", 0.8),
		LLMTimeout:     getEnvAsDuration("LLM_TIMEOUT", 15*time.Second),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
		BedrockModelID:      getEnv("BEDROCK_MODEL_ID", ""),

		UseMemoryStore: getEnvAsBool("USE_MEMORY_STORE", false),
		RedisAddr:      getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
		RateLimitPerSec:    getEnvAsFloat("RATE_LIMIT_PER_SEC", 10),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 30),

		ScoreDBPath:      getEnv("SCORE_DB_PATH", "data/scores.db"),
		AnalystModel:     getEnv("ANALYST_MODEL", ""),
		AnalystTimeout:   getEnvAsDuration("ANALYST_TIMEOUT", 20*time.Second),
		WorkerCount:      getEnvAsInt("WORKER_COUNT", 2),
		QueueBufferSize:  getEnvAsInt("QUEUE_BUFFER_SIZE", 128),
		ReceiveWaitSecs:  getEnvAsInt("RECEIVE_WAIT_SECONDS", 2),
		ReceiveBatchSize: getEnvAsInt("RECEIVE_BATCH_SIZE", 5),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable into a slice.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

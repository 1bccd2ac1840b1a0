package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv    string
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogPretty bool

	KafkaBrokers        []string
	KafkaSelectionTopic string
	// upper bound for the post-commit selection event
	SelectionPublishTimeout time.Duration

	// token bucket for the public calculate endpoint
	CalculateRatePerSec float64
	CalculateBurst      int

	DeliveryFee int64
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file, using process environment")
	}

	env := getEnv("APP_ENV", "development")
	return &Config{
		AppEnv:                  env,
		DBDriver:                getEnv("DB_DRIVER", "sqlite"),
		DBSource:                getEnv("DB_SOURCE", "foody.db"),
		Port:                    getEnv("PORT", "8000"),
		JWTSecret:               jwtSecret(env),
		JWTTTL:                  time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogPretty:               getEnv("LOG_PRETTY", "false") == "true",
		KafkaBrokers:            splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaSelectionTopic:     getEnv("KAFKA_SELECTION_TOPIC", "combo-selections"),
		SelectionPublishTimeout: time.Duration(getEnvInt("SELECTION_PUBLISH_TIMEOUT_MS", 2000)) * time.Millisecond,
		CalculateRatePerSec:     getEnvFloat("CALCULATE_RATE_PER_SEC", 5),
		CalculateBurst:          getEnvInt("CALCULATE_BURST", 10),
		DeliveryFee:             int64(getEnvInt("DELIVERY_FEE", 0)),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer env, using default")
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid number env, using default")
		return fallback
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// the dev default must never sign production tokens
func jwtSecret(env string) string {
	if env == "development" {
		return getEnv("JWT_SECRET", "changeme")
	}
	return MustGetEnv("JWT_SECRET")
}

// MustGetEnv for values that have no sane default. Panics when key is unset or empty.
func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Panic().Str("key", key).Msg("missing env")
	}
	return v
}

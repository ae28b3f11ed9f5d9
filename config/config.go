package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type PusherConfig struct {
	AppID   string
	Key     string
	Secret  string
	Cluster string
}

// Enabled reports whether enough credentials are present to talk to Pusher.
func (p PusherConfig) Enabled() bool {
	return p.AppID != "" && p.Key != "" && p.Secret != ""
}

type Config struct {
	Port              string
	GinMode           string
	DBDriver          string
	DatabaseURL       string
	JWTSecret         []byte
	SessionTTL        time.Duration
	SessionCookie     string
	RedisURL          string
	CacheTTL          time.Duration
	LocationBackend   string
	MongoURI          string
	MongoDatabase     string
	Pusher            PusherConfig
	AMQPURL           string
	AMQPExchange      string
	AuthRatePerMinute int
	LogLevel          string
	LogFormat         string
	PollInterval      time.Duration
}

var (
	current  *Config
	loadOnce sync.Once
)

// Get loads the configuration on first use (.env first, then the process
// environment) and returns the same value afterwards.
func Get() *Config {
	loadOnce.Do(func() {
		current = Load()
	})
	return current
}

// Load reads a fresh Config from the environment.
func Load() *Config {
	// Load .env file if exists
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", ""),
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL:     getEnv("DATABASE_URL", "food_delivery.db"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "food_delivery_super_secret_2024")),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SessionCookie:   getEnv("SESSION_COOKIE", "session_id"),
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTL:        getEnvAsDuration("CACHE_TTL", time.Minute),
		LocationBackend: getEnv("LOCATION_BACKEND", "sql"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "food_delivery"),
		Pusher: PusherConfig{
			AppID:   getEnv("PUSHER_APP_ID", ""),
			Key:     getEnv("PUSHER_KEY", ""),
			Secret:  getEnv("PUSHER_SECRET", ""),
			Cluster: getEnv("PUSHER_CLUSTER", "mt1"),
		},
		AMQPURL:           getEnv("AMQP_URL", ""),
		AMQPExchange:      getEnv("AMQP_EXCHANGE", "delivery_events"),
		AuthRatePerMinute: getEnvAsInt("AUTH_RATE_PER_MINUTE", 20),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		PollInterval:      getEnvAsDuration("POLL_INTERVAL", 5*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string
	GinMode  string

	DatabaseURL string
	SeedCatalog bool

	SessionSecret   string
	JWTSecret       string
	JWTIssuer       string
	JWTTTL          time.Duration
	PayNotifySecret string

	RequestTimeout   time.Duration
	VipSweepInterval time.Duration
}

// Load reads .env (if any) and then the process environment.
// The returned bool reports whether a .env file was found.
func Load() (*Config, bool) {
	found := godotenv.Load() == nil

	cfg := &Config{
		Env:      getEnv("APP_ENV", "prod"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		GinMode:  getEnv("GIN_MODE", "release"),

		// Fallback for local dev if not set
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=pointmall port=5432 sslmode=disable TimeZone=Asia/Shanghai"),
		SeedCatalog: getEnv("SEED_CATALOG", "true") == "true",

		SessionSecret:   getEnv("SESSION_SECRET", "secret_key_change_me"),
		JWTSecret:       getEnv("JWT_SECRET", "jwt_secret_change_me"),
		JWTIssuer:       getEnv("JWT_ISSUER", "pointmall"),
		JWTTTL:          getDuration("JWT_TTL", 72*time.Hour),
		PayNotifySecret: getEnv("PAY_NOTIFY_SECRET", "notify_secret_change_me"),

		RequestTimeout:   getDuration("REQUEST_TIMEOUT", 10*time.Second),
		VipSweepInterval: getDuration("VIP_SWEEP_INTERVAL", time.Hour),
	}
	return cfg, found
}

func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

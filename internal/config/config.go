package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	// The fallback secret exists so local dev works without a .env file.
	// Shipping it to production is a deployment mistake, not something this
	// service can detect or fix.
	JWTSecret     string
	JWTExpiryDays int

	// Back-office identity seeded at startup when missing.
	AdminEmail    string
	AdminPassword string
	AdminName     string
	AdminRole     string

	// Stats cache. Empty addr disables Redis and falls back to the
	// in-process cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSOrigins []string

	OTLPEndpoint string

	// rate limiting for the public write endpoints
	RateLimit       int
	RateLimitWindow time.Duration
}

func Load() Config {
	// best effort, real env vars win over the file
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 5000),
		DBURL: buildDBURL(),

		JWTSecret:     getEnv("JWT_SECRET", "fallback-secret-key"),
		JWTExpiryDays: getEnvInt("JWT_EXPIRES_DAYS", 7),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Admin User"),
		AdminRole:     getEnv("ADMIN_ROLE", "super_admin"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),

		RateLimit:       getEnvInt("RATE_LIMIT", 30),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "clinichub")
	pass := getEnv("DB_PASSWORD", "clinichub")
	name := getEnv("DB_NAME", "clinichub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// getEnvInt falls back on unset and on unparsable values alike; config
// loading happens before the logger exists, so there is nowhere to complain.
func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if num, err := strconv.Atoi(v); err == nil {
			return num
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr         string
	GinMode         string
	DBDSN           string
	RedisURL        string
	JWTSecret       string
	CORSOrigins     []string
	FavoritesTTL    time.Duration
	RefreshInterval time.Duration
	AutoMigrate     bool
}

const (
	releaseMode  = "release"
	devJWTSecret = "dev-secret-change-me"
)

// LoadEnv reads process env after an optional .env file. Values already set in
// the environment win over the file.
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" && ginMode != releaseMode {
		secret = devJWTSecret
	}

	return Env{
		AppAddr:         appAddr,
		GinMode:         ginMode,
		DBDSN:           buildDSN(),
		RedisURL:        strings.TrimSpace(os.Getenv("REDIS_URL")),
		JWTSecret:       secret,
		CORSOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		FavoritesTTL:    durationOr("FAVORITES_TTL", 24*time.Hour),
		RefreshInterval: durationOr("LISTINGS_REFRESH_INTERVAL", time.Minute),
		AutoMigrate:     boolOr("AUTO_MIGRATE", false),
	}
}

// Validate rejects settings the server must not start with.
func (e Env) Validate() error {
	if e.GinMode == releaseMode && e.JWTSecret == "" {
		return errors.New("JWT_SECRET is required when GIN_MODE=release")
	}
	return nil
}

func buildDSN() string {
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" {
		return dsn
	}
	user := valueOr("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := valueOr("DB_HOST", "127.0.0.1:3306")
	name := valueOr("DB_NAME", "agrisolve")
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4&clientFoundRows=true&timeout=5s&readTimeout=30s&writeTimeout=30s",
		user, pass, host, name)
}

func valueOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func boolOr(key string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

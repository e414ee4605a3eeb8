package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// JWTConfig defines issuer/secret pair for admin auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr              string
	DatabaseURL       string
	ConnectTimeout    time.Duration
	Timezone          string
	ServerLog         *log.Logger
	JWTConfigs        []JWTConfig
	JWTAudience       string
	AllowedOrigins    []string
	MailEndpoint      string
	MailAPIKey        string
	MailFrom          string
	MailAdminTo       string
	MailTimeout       time.Duration
	StorageEndpoint   string
	StorageBucket     string
	StorageTimeout    time.Duration
	MasterCacheTTL    time.Duration
	MasterCachePrefix string
}

// Load reads environment variables and returns a fully populated Config.
// ローカル開発では .env があれば先に読み込む(無ければ黙って無視する)。
func Load() Config {
	_ = godotenv.Load()

	connectTimeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("DB_CONNECT_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			connectTimeout = parsed
		}
	}

	mailTimeout := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MAIL_GATEWAY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			mailTimeout = parsed
		}
	}

	storageTimeout := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("STORAGE_GATEWAY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			storageTimeout = parsed
		}
	}

	masterCacheTTL := 5 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("MASTER_CACHE_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			masterCacheTTL = parsed
		}
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("ADMIN_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("ADMIN_JWT_ISSUER", "otonavi-admin"),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(os.Getenv("IMPORTER_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("IMPORTER_JWT_ISSUER", "otonavi-importer"),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		log.Fatal("JWT secrets not configured. Set ADMIN_JWT_SECRET or IMPORTER_JWT_SECRET.")
	}

	cfg := Config{
		Addr:              envOrDefault("HTTP_ADDR", ":8080"),
		DatabaseURL:       envOrDefault("DATABASE_URL", "postgres://postgres:postgres@db:5432/otonavi?sslmode=disable"),
		ConnectTimeout:    connectTimeout,
		Timezone:          envOrDefault("TIMEZONE", "Asia/Tokyo"),
		ServerLog:         log.New(os.Stdout, "[otonavi-api] ", log.LstdFlags|log.Lshortfile),
		JWTConfigs:        jwtConfigs,
		JWTAudience:       strings.TrimSpace(os.Getenv("ADMIN_JWT_AUDIENCE")),
		AllowedOrigins:    parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		MailEndpoint:      envOrDefault("MAIL_GATEWAY_URL", "https://api.resend.com"),
		MailAPIKey:        strings.TrimSpace(os.Getenv("MAIL_API_KEY")),
		MailFrom:          envOrDefault("MAIL_FROM", "noreply@otonavi.jp"),
		MailAdminTo:       strings.TrimSpace(os.Getenv("MAIL_ADMIN_TO")),
		MailTimeout:       mailTimeout,
		StorageEndpoint:   strings.TrimSpace(os.Getenv("STORAGE_GATEWAY_URL")),
		StorageBucket:     envOrDefault("STORAGE_BUCKET", "store-images"),
		StorageTimeout:    storageTimeout,
		MasterCacheTTL:    masterCacheTTL,
		MasterCachePrefix: envOrDefault("MASTER_CACHE_PREFIX", "otonavi:"),
	}

	cfg.ServerLog.Printf("loaded config: addr=%q mailEndpoint=%q storageEndpoint=%q", cfg.Addr, cfg.MailEndpoint, cfg.StorageEndpoint)

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}

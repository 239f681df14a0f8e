package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8090"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SitemapFile    string        // path to the sitemap manifest (optional, empty = breakdown over ad-hoc pages only)
	ReloadInterval time.Duration // interval to reload the sitemap manifest (default: 24h)
	MaxCommentLen  int           // rune cap applied to submitted/edited comment text

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // redis DB number
	RedisDT               time.Duration // redis dial timeout (ex: 5s)
	RedisRT               time.Duration // redis read timeout (ex: 3s)
	RedisWT               time.Duration // redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // redis connection pool size
	RedisConnectTimeout   time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // initial wait between retries (ex: 2s, grows exponentially)

	AllowedOrigins []string // origins allowed for CORS and the websocket stream (empty = same-origin only tooling, allow all)
	AllowedCIDRS   []string // optional, restrict infra endpoints to specific IPs
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PINNOTE_LISTEN_PORT", ":8090"),
		ShutdownTimeout: mustDuration("PINNOTE_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PINNOTE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PINNOTE_PRETTY_LOG", true),

		// Sitemap manifest
		SitemapFile:    getenv("PINNOTE_SITEMAP_FILE", ""),
		ReloadInterval: mustDuration("PINNOTE_RELOAD_SOURCE_INTERVAL", 24*time.Hour),
		MaxCommentLen:  getenvInt("PINNOTE_MAX_COMMENT_LEN", 5000),

		// Redis settings
		RedisAddr:             requireEnv("PINNOTE_REDIS_ADDR"),
		RedisUser:             getenv("PINNOTE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("PINNOTE_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("PINNOTE_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("PINNOTE_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("PINNOTE_ALLOWED_ORIGINS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("PINNOTE_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("PINNOTE_TRUST_PROXY", true),
	}

	// Validate redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: PINNOTE_REDIS_PASSWORD is required when PINNOTE_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

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
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	LibraryFile      string        // path to the affirmations.yaml library (optional, empty = builtin set)
	ReloadInterval   time.Duration // interval to reload the library file (default: 24h)
	RolloverInterval time.Duration // how often to check for a calendar-day change (default: 1m)

	DeckMinValidRatio float64 // rebuild a restored deck when fewer than this ratio of eligible ids resolve

	// Redis. Empty addr => in-memory store, nothing persists across restarts.
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("GLOW_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("GLOW_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("GLOW_LOG_LEVEL", "info"),
		PrettyLog: mustBool("GLOW_PRETTY_LOG", true),

		// Content library
		LibraryFile:      getenv("GLOW_LIBRARY_FILE", ""), // Optional, empty = builtin affirmations
		ReloadInterval:   mustDuration("GLOW_RELOAD_SOURCE_INTERVAL", 24*time.Hour),
		RolloverInterval: mustDuration("GLOW_ROLLOVER_CHECK_INTERVAL", time.Minute),

		DeckMinValidRatio: getenvFloat("GLOW_DECK_MIN_VALID_RATIO", 0.5),

		// Redis settings
		RedisAddr:             getenv("GLOW_REDIS_ADDR", ""),
		RedisUser:             getenv("GLOW_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("GLOW_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("GLOW_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("GLOW_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("GLOW_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("GLOW_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("GLOW_TRUST_PROXY", false),
	}

	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: GLOW_REDIS_PASSWORD is required when GLOW_REDIS_PASSWORD_REQUIRED=true")
	}
	if cfg.DeckMinValidRatio <= 0 || cfg.DeckMinValidRatio > 1 {
		panic(fmt.Sprintf("❌ FATAL: GLOW_DECK_MIN_VALID_RATIO must be in (0, 1], got %v", cfg.DeckMinValidRatio))
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

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
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

package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	InventoryMode    string // mock | http
	InventoryBaseURL string
	InventoryKey     string
	InventoryRPS     int
	MockSeed         uint64

	SearchWorkers     int
	SearchTimeout     time.Duration
	CacheTTL          time.Duration
	RateLimitPerMin   int
	CORSAllowedOrigin []string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		InventoryMode:    strings.ToLower(env("INVENTORY_MODE", "mock")),
		InventoryBaseURL: env("INVENTORY_BASE_URL", ""),
		InventoryKey:     env("INVENTORY_API_KEY", ""),
		InventoryRPS:     atoi("INVENTORY_RPS", 5),
		MockSeed:         uint64(atoi("MOCK_SEED", 1)),

		SearchWorkers:     atoi("SEARCH_WORKERS", 3),
		SearchTimeout:     time.Duration(atoi("SEARCH_TIMEOUT_SECONDS", 10)) * time.Second,
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		RateLimitPerMin:   atoi("RATE_LIMIT_PER_MINUTE", 60),
		CORSAllowedOrigin: splitList(env("CORS_ORIGINS", "*")),
	}
	switch c.InventoryMode {
	case "mock", "http":
	default:
		log.Warn().Str("mode", c.InventoryMode).Msg("unknown INVENTORY_MODE, using mock")
		c.InventoryMode = "mock"
	}
	if c.InventoryMode == "http" && c.InventoryKey == "" {
		log.Warn().Msg("INVENTORY_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
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

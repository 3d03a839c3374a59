package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	PostgresDSN string
	Redis       Redis
	// ReportCacheTTL bounds how long a full compliance report stays valid;
	// observed distances change often.
	ReportCacheTTL time.Duration
	// ProfileCacheTTL bounds cached product hazard profiles; these change
	// far less often than reports.
	ProfileCacheTTL time.Duration
}

// Redis captures Redis connection configuration.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PHYTOGUARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:        addr,
		PostgresDSN: os.Getenv("PHYTOGUARD_POSTGRES_DSN"),
		Redis: Redis{
			URL:          os.Getenv("PHYTOGUARD_REDIS_URL"),
			PoolSize:     envInt("PHYTOGUARD_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("PHYTOGUARD_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("PHYTOGUARD_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("PHYTOGUARD_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("PHYTOGUARD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		ReportCacheTTL:  envDuration("PHYTOGUARD_REPORT_CACHE_TTL", 2*time.Hour),
		ProfileCacheTTL: envDuration("PHYTOGUARD_PROFILE_CACHE_TTL", 24*time.Hour),
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}

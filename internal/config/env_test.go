package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_NAME", "DB_QUERY_TIMEOUT", "CURRENCY_PREFIX", "CACHE_BACKEND", "OPTIONS_CACHE_TTL", "CORS_ALLOWED_ORIGINS", "JWT_SECRET"} {
		t.Setenv(k, "")
	}

	env := LoadEnv("testdata/does-not-exist.env")
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.DB.Name != "redbusdata" {
		t.Fatalf("DB.Name = %q", env.DB.Name)
	}
	if env.DB.QueryTimeout != 10*time.Second {
		t.Fatalf("QueryTimeout = %s", env.DB.QueryTimeout)
	}
	if env.CurrencyPrefix != "INR " {
		t.Fatalf("CurrencyPrefix = %q", env.CurrencyPrefix)
	}
	if env.CacheBackend != "memory" || env.OptionsCacheTTL != 0 {
		t.Fatalf("cache = %q ttl=%s", env.CacheBackend, env.OptionsCacheTTL)
	}
	if len(env.CORSAllowedOrigins) == 0 {
		t.Fatalf("expected default CORS origins")
	}
	if env.JWTSecret != "" {
		t.Fatalf("JWTSecret must have no built-in default, got %q", env.JWTSecret)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_QUERY_TIMEOUT", "3s")
	t.Setenv("OPTIONS_CACHE_TTL", "15m")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("SEARCH_RATE_PER_MINUTE", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	env := LoadEnv("testdata/does-not-exist.env")
	if env.DB.QueryTimeout != 3*time.Second {
		t.Fatalf("QueryTimeout = %s", env.DB.QueryTimeout)
	}
	if env.OptionsCacheTTL != 15*time.Minute {
		t.Fatalf("OptionsCacheTTL = %s", env.OptionsCacheTTL)
	}
	if env.CacheBackend != "redis" {
		t.Fatalf("CacheBackend = %q", env.CacheBackend)
	}
	if env.SearchRatePerMinute != 60 {
		t.Fatalf("invalid int should fall back, got %d", env.SearchRatePerMinute)
	}
	if len(env.CORSAllowedOrigins) != 2 || env.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORSAllowedOrigins = %v", env.CORSAllowedOrigins)
	}
}

func TestDSN(t *testing.T) {
	dsn := DBConfig{User: "root", Host: "db.local", Port: "3307", Name: "redbusdata"}.DSN()
	for _, want := range []string{"root@tcp(db.local:3307)/redbusdata", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DB DBConfig

	CurrencyPrefix string

	CacheBackend    string
	RedisURL        string
	OptionsCacheTTL time.Duration

	LogLevel  string
	LogFormat string

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	CORSAllowedOrigins []string

	SearchRatePerMinute int
	SearchRateBurst     int
}

// DBConfig describes the MySQL instance holding final_bus_details.
type DBConfig struct {
	User         string
	Password     string
	Host         string
	Port         string
	Name         string
	QueryTimeout time.Duration
}

// LoadEnv reads an optional .env file, then the process environment.
func LoadEnv(envPath ...string) Env {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DB: DBConfig{
			User:         getEnv("DB_USER", "root"),
			Password:     os.Getenv("DB_PASSWORD"),
			Host:         getEnv("DB_HOST", "127.0.0.1"),
			Port:         getEnv("DB_PORT", "3306"),
			Name:         getEnv("DB_NAME", "redbusdata"),
			QueryTimeout: getEnvAsDuration("DB_QUERY_TIMEOUT", 10*time.Second),
		},

		CurrencyPrefix: getEnvRaw("CURRENCY_PREFIX", "INR "),

		CacheBackend:    strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		OptionsCacheTTL: getEnvAsDuration("OPTIONS_CACHE_TTL", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "tint")),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),

		SearchRatePerMinute: getEnvAsInt("SEARCH_RATE_PER_MINUTE", 60),
		SearchRateBurst:     getEnvAsInt("SEARCH_RATE_BURST", 20),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getEnvRaw keeps surrounding whitespace, which matters for the currency prefix.
func getEnvRaw(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvAsList(key string, fallback []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

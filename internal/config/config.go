// Package config loads service configuration from the environment.
// Every knob has a default that works for a local run with no external
// services.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr    string
	LogDev  bool
	Storage Storage
	Metrics Metrics
	Payment Payment
	Rate    Rate
}

type Storage struct {
	// Driver selects the ledger backend: memory, file, postgres, redis.
	Driver    string
	StatePath string

	PostgresDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type Metrics struct {
	Enabled bool
	Token   string
}

type Payment struct {
	Delay   time.Duration
	Decline bool
}

type Rate struct {
	Limit  int
	Window time.Duration
}

func Load() (*Config, error) {
	c := &Config{
		Addr:   ":" + getenv("PORT", "8080"),
		LogDev: getbool("LOG_DEV", false),
		Storage: Storage{
			Driver:        getenv("STORAGE_DRIVER", "file"),
			StatePath:     getenv("STATE_PATH", "storefront-state.json"),
			PostgresDSN:   getenv("POSTGRES_DSN", ""),
			RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getenv("REDIS_PASSWORD", ""),
		},
		Metrics: Metrics{
			Enabled: getbool("METRICS_ENABLED", false),
			Token:   getenv("METRICS_TOKEN", ""),
		},
	}

	switch c.Storage.Driver {
	case "memory", "file", "postgres", "redis":
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.PostgresDSN == "" {
		return nil, fmt.Errorf("STORAGE_DRIVER=postgres requires POSTGRES_DSN")
	}

	db, err := getint("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	c.Storage.RedisDB = db

	delayMS, err := getint("PAYMENT_DELAY_MS", 1500)
	if err != nil {
		return nil, err
	}
	c.Payment.Delay = time.Duration(delayMS) * time.Millisecond
	c.Payment.Decline = getbool("PAYMENT_DECLINE", false)

	limit, err := getint("RATE_LIMIT", 0)
	if err != nil {
		return nil, err
	}
	windowS, err := getint("RATE_WINDOW_S", 60)
	if err != nil {
		return nil, err
	}
	c.Rate.Limit = limit
	c.Rate.Window = time.Duration(windowS) * time.Second

	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getint(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return n, nil
}

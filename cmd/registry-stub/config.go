package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"crpt-gateway/crpt/infra"
	"crpt-gateway/crpt/registry"

	"github.com/cockroachdb/errors"
)

type config struct {
	listenAddr string
	path       string

	// cota por token (ver registry.DefaultKeyFunc)
	rps        float64
	burst      int
	keyHeader  string
	trustXFF   bool
	retryAfter time.Duration
	addHeaders bool

	concurrencyMax     int
	concurrencyTimeout time.Duration

	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8081")
	cfg.path = getenvDefault("REGISTRY_PATH", registry.DefaultPath)

	// REGISTRY_QUOTA/REGISTRY_QUOTA_UNIT têm prioridade sobre REGISTRY_RPS,
	// espelhando a forma "N por unidade" usada pelo cliente.
	if n, ok := getenvInt("REGISTRY_QUOTA"); ok {
		cfg.rps = infra.QuotaPerUnit(n, getenvDurationDefault("REGISTRY_QUOTA_UNIT", time.Second))
		cfg.burst = getenvIntDefault("REGISTRY_BURST", n)
	} else {
		cfg.rps = getenvFloatDefault("REGISTRY_RPS", 5)
		cfg.burst = getenvIntDefault("REGISTRY_BURST", 5)
	}
	cfg.keyHeader = os.Getenv("REGISTRY_KEY_HEADER")
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", true)

	cfg.concurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 50)
	cfg.concurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.statsRedisAddr = strings.TrimSpace(os.Getenv("STATS_REDIS_ADDR"))
	cfg.statsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "crpt:registry:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)

	if !strings.HasPrefix(cfg.path, "/") {
		return config{}, errors.Newf("REGISTRY_PATH must start with /, got %q", cfg.path)
	}
	if cfg.rps <= 0 {
		return config{}, errors.New("registry rate must be > 0")
	}
	if cfg.burst <= 0 {
		return config{}, errors.New("REGISTRY_BURST must be > 0")
	}
	if cfg.concurrencyMax < 0 {
		return config{}, errors.New("CONCURRENCY_MAX must be >= 0")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	if i, ok := getenvInt(k); ok {
		return i
	}
	return def
}

func getenvInt(k string) (int, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
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

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

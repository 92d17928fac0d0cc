package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	PaymentProviderAddress string
	AuthSecret             string
	RedisAddress           string
	RateLimitPerMinute     int
	ReconcilePollInterval  time.Duration
	PendingPaymentAge      time.Duration
	ReconcileBatchSize     int
	WorkerPoolSize         int
	ShutdownTimeout        time.Duration
}

const (
	defaultRunAddress            = ":8080"
	defaultAuthSecret            = "change-me-in-production"
	defaultRateLimitPerMinute    = 120
	defaultReconcilePollInterval = 30 * time.Second
	defaultPendingPaymentAge     = 5 * time.Minute
	defaultReconcileBatchSize    = 32
	defaultWorkerPoolSize        = 4
	defaultShutdownTimeout       = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		PaymentProviderAddress: getString(lookup, "PAYMENT_PROVIDER_ADDRESS", ""),
		AuthSecret:             getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		RedisAddress:           getString(lookup, "REDIS_ADDRESS", ""),
		RateLimitPerMinute:     getInt(lookup, "RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute),
		ReconcilePollInterval:  getDuration(lookup, "RECONCILE_POLL_INTERVAL", defaultReconcilePollInterval),
		PendingPaymentAge:      getDuration(lookup, "PENDING_PAYMENT_AGE", defaultPendingPaymentAge),
		ReconcileBatchSize:     getInt(lookup, "RECONCILE_BATCH_SIZE", defaultReconcileBatchSize),
		WorkerPoolSize:         getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("giveawayd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.ReconcilePollInterval.String()
		pendingAgeStr      = cfg.PendingPaymentAge.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentProviderAddress, "p", cfg.PaymentProviderAddress, "Payment provider base URL")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for verifying auth tokens")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the shared rate-limit store")
	fs.IntVar(&cfg.RateLimitPerMinute, "rate-limit", cfg.RateLimitPerMinute, "Requests allowed per client per minute")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.StringVar(&pollIntervalStr, "reconcile-interval", pollIntervalStr, "Interval between reconciliation polls")
	fs.StringVar(&pendingAgeStr, "pending-age", pendingAgeStr, "Age before a pending payment is reconciled")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.ReconcileBatchSize, "reconcile-batch", cfg.ReconcileBatchSize, "Maximum payments per reconciliation batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcilePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.PendingPaymentAge, err = time.ParseDuration(pendingAgeStr); err != nil {
		return nil, fmt.Errorf("invalid pending payment age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = defaultRateLimitPerMinute
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatchSize <= 0 {
		cfg.ReconcileBatchSize = defaultReconcileBatchSize
	}

	if cfg.ReconcilePollInterval <= 0 {
		cfg.ReconcilePollInterval = defaultReconcilePollInterval
	}

	if cfg.PendingPaymentAge <= 0 {
		cfg.PendingPaymentAge = defaultPendingPaymentAge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentProviderAddress == "" {
		return nil, fmt.Errorf("payment provider address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/metrics"
	"github.com/thenoetrevino/phaseboard/internal/notifications"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger     *slog.Logger
	sink       notifications.Sink
	sinkCtx    context.Context
	now        func() time.Time
	newID      types.IDGenerator
	thresholds metrics.Thresholds
	capacity   int
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithSink appends every published notification to s
func WithSink(s notifications.Sink) Option {
	return func(cfg *appConfig) {
		cfg.sink = s
	}
}

// WithSinkContext bounds notification log appends by ctx
func WithSinkContext(ctx context.Context) Option {
	return func(cfg *appConfig) {
		cfg.sinkCtx = ctx
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.now = now
	}
}

// WithIDGenerator replaces the UUID generator for cards, subtasks and notifications
func WithIDGenerator(gen types.IDGenerator) Option {
	return func(cfg *appConfig) {
		cfg.newID = gen
	}
}

// WithThresholds sets the metrics classification thresholds
func WithThresholds(t metrics.Thresholds) Option {
	return func(cfg *appConfig) {
		cfg.thresholds = t
	}
}

// WithCapacity sets how many notifications the ledger retains
func WithCapacity(n int) Option {
	return func(cfg *appConfig) {
		cfg.capacity = n
	}
}

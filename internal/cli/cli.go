package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/phaseboard/internal/app"
	"github.com/thenoetrevino/phaseboard/internal/cli/styles"
	"github.com/thenoetrevino/phaseboard/internal/config"
	"github.com/thenoetrevino/phaseboard/internal/database"
	"github.com/thenoetrevino/phaseboard/internal/events"
	"github.com/thenoetrevino/phaseboard/internal/logging"
	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/notifications"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// ErrNoHistory is returned when the notification log is disabled
var ErrNoHistory = errors.New("notification log is disabled (set notifications.log.driver to sqlite or redis)")

type contextKey string

const appKey contextKey = "phaseboardApp"

// WithApp returns a context that makes GetCLIFromContext reuse a
// running App instead of building one. The shell and tests use this.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// History reads notifications back from a persistent log
type History interface {
	History(ctx context.Context, userID types.MemberID, limit int) ([]models.Notification, error)
}

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config

	history History
	logFile io.Closer
	owned   bool // App was built here and must be closed here
	ctx     context.Context
}

// GetCLIFromContext returns a CLI around the App carried by ctx, or
// builds a fresh one from config when there is none
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.Default()
		}
		styles.Init(cfg.ColorScheme)
		return &CLI{App: a, Config: cfg, history: historyOf(a.Sink()), ctx: ctx}, nil
	}
	return NewCLI(ctx)
}

// NewCLI loads config and the pipeline, opens the notification log the
// config asks for, and builds a seeded App
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	styles.Init(cfg.ColorScheme)

	var logFile io.Closer
	if dataDir, err := config.DataDir(); err == nil {
		// Logging is best effort; the CLI works without a log file
		if f, err := logging.Init(dataDir, slog.LevelInfo); err == nil {
			logFile = f
		}
	}

	pipeline, err := config.LoadPipeline()
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}

	sink, err := openSink(ctx, cfg.Notifications.Log)
	if err != nil {
		closeQuietly(logFile)
		return nil, fmt.Errorf("failed to open notification log: %w", err)
	}

	opts := []app.Option{
		app.WithThresholds(cfg.Thresholds),
		app.WithCapacity(cfg.Notifications.Capacity),
		app.WithSinkContext(ctx),
	}
	if sink != nil {
		opts = append(opts, app.WithSink(sink))
	}

	application, err := app.New(pipeline, opts...)
	if err != nil {
		if sink != nil {
			closeQuietly(sink)
		}
		closeQuietly(logFile)
		return nil, err
	}

	return &CLI{
		App:     application,
		Config:  cfg,
		history: historyOf(sink),
		logFile: logFile,
		owned:   true,
		ctx:     ctx,
	}, nil
}

// openSink returns nil for the none driver. Appends are retried up to
// lc.Retries times.
func openSink(ctx context.Context, lc config.LogConfig) (notifications.Sink, error) {
	switch lc.Driver {
	case config.LogDriverSQLite:
		nl, err := database.OpenNotificationLog(ctx, lc.Path)
		if err != nil {
			return nil, err
		}
		return events.NewRetrySink(nl, lc.Retries), nil
	case config.LogDriverRedis:
		rl, err := database.NewRedisLog(&redis.Options{Addr: lc.RedisAddr}, lc.RedisKey)
		if err != nil {
			return nil, err
		}
		if err := rl.Ping(ctx); err != nil {
			_ = rl.Close()
			return nil, err
		}
		return events.NewRetrySink(rl, lc.Retries), nil
	default:
		return nil, nil
	}
}

// historyOf finds a History behind sink, looking through wrappers
func historyOf(sink notifications.Sink) History {
	for sink != nil {
		if h, ok := sink.(History); ok {
			return h
		}
		w, ok := sink.(interface{ Unwrap() notifications.Sink })
		if !ok {
			return nil
		}
		sink = w.Unwrap()
	}
	return nil
}

// NotificationHistory reads a member's persisted notifications, newest first
func (c *CLI) NotificationHistory(userID types.MemberID, limit int) ([]models.Notification, error) {
	if c.history == nil {
		return nil, ErrNoHistory
	}
	return c.history.History(c.ctx, userID, limit)
}

// Close cleans up CLI resources. An App injected through the context
// belongs to the caller and is left open.
func (c *CLI) Close() error {
	var err error
	if c.owned {
		err = c.App.Close()
	}
	closeQuietly(c.logFile)
	return err
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// Package notifications keeps the bounded, per-user notification ledger
package notifications

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// Sink receives every published notification in publish order.
// It is the optional append-only log behind the in-memory ledger.
type Sink interface {
	Append(ctx context.Context, n models.Notification) error
	Close() error
}

// Ledger is the authoritative in-memory store of notifications,
// most recent first, capped at a fixed capacity.
type Ledger struct {
	// pubMu serialises publishers so the sink sees ledger order
	pubMu    sync.Mutex
	mu       sync.RWMutex
	entries  []models.Notification
	capacity int

	sink    Sink
	sinkCtx context.Context
	now     func() time.Time
	newID  types.IDGenerator
	logger *slog.Logger
}

// Option configures a Ledger
type Option func(*Ledger)

// WithCapacity overrides the default cap of 100 entries
func WithCapacity(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithSink mirrors every published notification to an append-only log
func WithSink(s Sink) Option {
	return func(l *Ledger) {
		l.sink = s
	}
}

// WithSinkContext bounds sink appends by ctx. Cancelling it cuts short
// a slow or retrying sink; the ledger itself is unaffected.
func WithSinkContext(ctx context.Context) Option {
	return func(l *Ledger) {
		if ctx != nil {
			l.sinkCtx = ctx
		}
	}
}

// WithClock sets the time source
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator sets how notification IDs are minted
func WithIDGenerator(gen types.IDGenerator) Option {
	return func(l *Ledger) {
		l.newID = gen
	}
}

// WithLogger sets the logger used for sink failures
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// NewLedger creates an empty ledger
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		capacity: models.DefaultNotificationCapacity,
		sinkCtx:  context.Background(),
		now:      time.Now,
		newID:    types.NewID,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Publish records a notification and evicts the oldest entries beyond capacity
func (l *Ledger) Publish(p models.PendingNotification) models.Notification {
	l.pubMu.Lock()
	defer l.pubMu.Unlock()

	n := models.Notification{
		ID:        types.NotificationID(l.newID()),
		Type:      p.Type,
		Message:   p.Message,
		CardID:    p.CardID,
		ForUser:   p.ForUser,
		CreatedAt: l.now(),
		Read:      false,
	}

	l.mu.Lock()
	entries := make([]models.Notification, 0, min(len(l.entries)+1, l.capacity))
	entries = append(entries, n)
	entries = append(entries, l.entries...)
	if len(entries) > l.capacity {
		evicted := len(entries) - l.capacity
		entries = entries[:l.capacity]
		l.logger.Debug("evicted notifications", "count", evicted, "capacity", l.capacity)
	}
	l.entries = entries
	sink := l.sink
	l.mu.Unlock()

	if sink != nil {
		if err := sink.Append(l.sinkCtx, n); err != nil {
			l.logger.Warn("failed to append notification to log",
				"notification_id", n.ID,
				"type", n.Type,
				"error", err)
		}
	}

	return n
}

// PublishAll publishes in order and returns the stored notifications
func (l *Ledger) PublishAll(pending []models.PendingNotification) []models.Notification {
	out := make([]models.Notification, 0, len(pending))
	for _, p := range pending {
		out = append(out, l.Publish(p))
	}
	return out
}

// MarkRead flags a notification as read. Unknown or evicted IDs are ignored.
func (l *Ledger) MarkRead(id types.NotificationID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Read = true
			return
		}
	}
}

// UnreadCountFor counts a user's unread notifications
func (l *Ledger) UnreadCountFor(userID types.MemberID) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, n := range l.entries {
		if n.ForUser == userID && !n.Read {
			count++
		}
	}
	return count
}

// NotificationsFor returns a user's notifications, newest first
func (l *Ledger) NotificationsFor(userID types.MemberID) []models.Notification {
	l.mu.RLock()
	out := make([]models.Notification, 0)
	for _, n := range l.entries {
		if n.ForUser == userID {
			out = append(out, n)
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ClearFor drops every notification addressed to the user
func (l *Ledger) ClearFor(userID types.MemberID) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.entries[:0:0]
	for _, n := range l.entries {
		if n.ForUser != userID {
			kept = append(kept, n)
		}
	}
	removed := len(l.entries) - len(kept)
	l.entries = kept
	return removed
}

// All returns a copy of the whole ledger, newest first
func (l *Ledger) All() []models.Notification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Notification(nil), l.entries...)
}

// Len returns the number of retained notifications
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Close closes the sink, if any
func (l *Ledger) Close() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

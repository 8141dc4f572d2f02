package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/thenoetrevino/phaseboard/internal/models"
	"github.com/thenoetrevino/phaseboard/internal/types"
)

// NotificationLog appends published notifications to SQLite.
// Rows are never updated or deleted; read state lives in the ledger only.
type NotificationLog struct {
	db *sql.DB
}

// NewNotificationLog wraps an initialised database
func NewNotificationLog(db *sql.DB) *NotificationLog {
	return &NotificationLog{db: db}
}

// OpenNotificationLog initialises the database at path and wraps it
func OpenNotificationLog(ctx context.Context, path string) (*NotificationLog, error) {
	db, err := InitDB(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewNotificationLog(db), nil
}

// Append writes one notification
func (l *NotificationLog) Append(ctx context.Context, n models.Notification) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO notifications (id, type, message, card_id, for_user, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID.String(), string(n.Type), n.Message, n.CardID.String(), n.ForUser.String(),
		n.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to append notification %s: %w", n.ID, err)
	}
	return nil
}

// Recent returns the latest logged notifications across all users, most
// recent first. A limit of zero or less returns everything.
func (l *NotificationLog) Recent(ctx context.Context, limit int) ([]models.Notification, error) {
	return l.query(ctx, "", nil, limit)
}

// History returns a user's logged notifications, most recent first.
// A limit of zero or less returns everything.
func (l *NotificationLog) History(ctx context.Context, userID types.MemberID, limit int) ([]models.Notification, error) {
	return l.query(ctx, "WHERE for_user = ?", []any{userID.String()}, limit)
}

func (l *NotificationLog) query(ctx context.Context, where string, args []any, limit int) ([]models.Notification, error) {
	query := `
		SELECT id, type, message, card_id, for_user, created_at
		FROM notifications
		` + where + `
		ORDER BY seq DESC`
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		var id, typ, cardID, forUser, createdRaw string
		if err := rows.Scan(&id, &typ, &n.Message, &cardID, &forUser, &createdRaw); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		created, err := time.Parse(time.RFC3339Nano, createdRaw)
		if err != nil {
			return nil, fmt.Errorf("notification %s has bad timestamp %q: %w", id, createdRaw, err)
		}
		n.ID = types.NotificationID(id)
		n.Type = models.NotificationType(typ)
		n.CardID = types.CardID(cardID)
		n.ForUser = types.MemberID(forUser)
		n.CreatedAt = created
		out = append(out, n)
	}
	return out, rows.Err()
}

// Count returns how many notifications have ever been logged
func (l *NotificationLog) Count(ctx context.Context) (int, error) {
	var count int
	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Close closes the underlying database
func (l *NotificationLog) Close() error {
	return l.db.Close()
}

package models

import (
	"time"

	"github.com/thenoetrevino/phaseboard/internal/types"
)

// NotificationType tells the recipient what happened
type NotificationType string

const (
	NotificationCardMoved        NotificationType = "CARD_MOVED"
	NotificationSubtaskCompleted NotificationType = "SUBTASK_COMPLETED"
	NotificationMetricsUpdated   NotificationType = "METRICS_UPDATED"
	NotificationPhaseCompleted   NotificationType = "PHASE_COMPLETED"
)

// Notification is a ledger entry. Only Read ever changes after creation.
type Notification struct {
	ID        types.NotificationID `json:"id"`
	Type      NotificationType     `json:"type"`
	Message   string               `json:"message"`
	CardID    types.CardID         `json:"cardId"`
	CreatedAt time.Time            `json:"createdAt"`
	Read      bool                 `json:"read"`
	ForUser   types.MemberID       `json:"forUser"`
}

// PendingNotification is produced by a board mutation and handed to the
// ledger by whoever coordinates the two
type PendingNotification struct {
	Type    NotificationType
	Message string
	CardID  types.CardID
	ForUser types.MemberID
}

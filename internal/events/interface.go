package events

import (
	"context"

	"github.com/thenoetrevino/phaseboard/internal/models"
)

// Feed streams notifications as any phaseboard process publishes them.
// This lets one terminal watch what a shell in another terminal does.
type Feed interface {
	// Listen subscribes and returns a channel closed when ctx ends
	Listen(ctx context.Context) (<-chan models.Notification, error)

	// Close releases the connection and stops the listener
	Close() error
}

// Compile-time verification that *RedisFeed implements Feed
var _ Feed = (*RedisFeed)(nil)

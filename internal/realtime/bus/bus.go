package bus

import (
	"context"

	"github.com/pactfit/pactfit-backend/internal/realtime"
)

// Bus fans SSE messages out across instances. A single-instance deployment
// can run without one; the notifier falls back to the local hub.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}

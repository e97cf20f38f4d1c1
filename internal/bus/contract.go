//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package bus

import (
	"context"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

// Reader re-fetches the authoritative state of a changed entity so
// subscribers always receive the full current value, never a delta.
type Reader interface {
	GetMessage(ctx context.Context, id uuid.UUID) (*model.Message, error)
	GetTypingUsers(ctx context.Context, channelID uuid.UUID) ([]model.TypingIndicator, error)
	GetReactions(ctx context.Context, messageID uuid.UUID) ([]model.Reaction, error)
	GetReadReceipts(ctx context.Context, messageID uuid.UUID) ([]model.ReadReceipt, error)
}

// Pusher forwards events to remote clients attached to the realtime surface.
type Pusher interface {
	Publish(ctx context.Context, channel string, data interface{}) error
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// TypingFreshness is the window within which a typing indicator is
// considered live; readers filter by it instead of polling for expiry.
const TypingFreshness = 30 * time.Second

type Reaction struct {
	MessageID uuid.UUID `db:"message_id" json:"message_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Emoji     string    `db:"emoji" json:"emoji"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ReadReceipt struct {
	MessageID uuid.UUID `db:"message_id" json:"message_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	ReadAt    time.Time `db:"read_at" json:"read_at"`
}

type TypingIndicator struct {
	ChannelID uuid.UUID `db:"channel_id" json:"channel_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	StartedAt time.Time `db:"started_at" json:"started_at"`
}

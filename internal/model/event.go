package model

import "github.com/google/uuid"

// Bus events always carry the authoritative current state of the changed
// entity, never a partial delta.

type MessageEvent struct {
	ChannelID uuid.UUID `json:"channel_id"`
	Message   Message   `json:"message"`
}

type TypingEvent struct {
	ChannelID uuid.UUID         `json:"channel_id"`
	Users     []TypingIndicator `json:"users"`
}

type ReactionEvent struct {
	ChannelID uuid.UUID  `json:"channel_id"`
	MessageID uuid.UUID  `json:"message_id"`
	Reactions []Reaction `json:"reactions"`
}

type ReadReceiptEvent struct {
	ChannelID uuid.UUID     `json:"channel_id"`
	MessageID uuid.UUID     `json:"message_id"`
	Receipts  []ReadReceipt `json:"receipts"`
}

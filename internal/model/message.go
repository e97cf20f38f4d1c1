package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	TextMessageType   MessageType = "text"
	FileMessageType   MessageType = "file"
	VoiceMessageType  MessageType = "voice"
	ImageMessageType  MessageType = "image"
	SystemMessageType MessageType = "system"
)

func (t MessageType) Valid() bool {
	switch t {
	case TextMessageType, FileMessageType, VoiceMessageType, ImageMessageType, SystemMessageType:
		return true
	}
	return false
}

// MessageMetadata is persisted as a single JSON blob in the metadata column.
// A NULL or empty column decodes to the zero value, never an error.
type MessageMetadata struct {
	Mentions    []string `json:"mentions,omitempty"`
	Hashtags    []string `json:"hashtags,omitempty"`
	Links       []string `json:"links,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

func (m MessageMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MessageMetadata) Scan(src interface{}) error {
	if src == nil {
		*m = MessageMetadata{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata column type %T", src)
	}
	if len(raw) == 0 {
		*m = MessageMetadata{}
		return nil
	}
	return json.Unmarshal(raw, m)
}

type MessageList []Message

type Message struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ChannelID  uuid.UUID       `db:"channel_id" json:"channel_id"`
	SenderID   uuid.UUID       `db:"sender_id" json:"sender_id"`
	Type       MessageType     `db:"type" json:"type"`
	Content    string          `db:"content" json:"content"`
	Metadata   MessageMetadata `db:"metadata" json:"metadata"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	EditedAt   *time.Time      `db:"edited_at" json:"edited_at,omitempty"`
	IsDeleted  bool            `db:"is_deleted" json:"is_deleted"`
	IsArchived bool            `db:"is_archived" json:"is_archived"`
}

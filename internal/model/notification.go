package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	MessageNotification       NotificationType = "message"
	MentionNotification       NotificationType = "mention"
	ReactionNotification      NotificationType = "reaction"
	FileUploadNotification    NotificationType = "file_upload"
	ChannelInviteNotification NotificationType = "channel_invite"
)

func (t NotificationType) Valid() bool {
	switch t {
	case MessageNotification, MentionNotification, ReactionNotification,
		FileUploadNotification, ChannelInviteNotification:
		return true
	}
	return false
}

// NotificationData is the free-form payload column, stored as JSON.
type NotificationData map[string]string

func (d NotificationData) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(NotificationData{})
	}
	return json.Marshal(d)
}

func (d *NotificationData) Scan(src interface{}) error {
	if src == nil {
		*d = NotificationData{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported data column type %T", src)
	}
	if len(raw) == 0 {
		*d = NotificationData{}
		return nil
	}
	return json.Unmarshal(raw, d)
}

type NotificationList []Notification

type Notification struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	Type        NotificationType `db:"type" json:"type"`
	ChannelID   uuid.UUID        `db:"channel_id" json:"channel_id"`
	MessageID   *uuid.UUID       `db:"message_id" json:"message_id,omitempty"`
	SenderID    uuid.UUID        `db:"sender_id" json:"sender_id"`
	RecipientID uuid.UUID        `db:"recipient_id" json:"recipient_id"`
	Title       string           `db:"title" json:"title"`
	Body        string           `db:"body" json:"body"`
	Data        NotificationData `db:"data" json:"data"`
	IsRead      bool             `db:"is_read" json:"is_read"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

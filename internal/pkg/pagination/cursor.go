package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

type Direction string

const (
	Before Direction = "before"
	After  Direction = "after"
)

const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 50
)

// Cursor marks a position in creation order. The message id breaks ties
// between equal timestamps so pages never skip or repeat a message.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%s|%s", c.CreatedAt.UTC().Format(time.RFC3339Nano), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func Decode(s string) (*Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, model.NewValidationError("malformed cursor")
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return nil, model.NewValidationError("malformed cursor")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, model.NewValidationError("malformed cursor timestamp")
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, model.NewValidationError("malformed cursor id")
	}

	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}

// Page describes one history request. A nil Cursor selects the most recent
// page regardless of direction.
type Page struct {
	Limit     int
	Cursor    *Cursor
	Direction Direction
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// MessagePage is a page of history plus the cursors to continue in either
// direction. Empty cursors mean the corresponding edge was empty.
type MessagePage struct {
	Messages   model.MessageList `json:"messages"`
	NextCursor string            `json:"next_cursor,omitempty"`
	PrevCursor string            `json:"prev_cursor,omitempty"`
}

// NewMessagePage derives edge cursors from a newest-first message list.
// NextCursor continues toward older messages, PrevCursor toward newer.
func NewMessagePage(messages model.MessageList) MessagePage {
	page := MessagePage{Messages: messages}
	if len(messages) == 0 {
		return page
	}

	newest := messages[0]
	oldest := messages[len(messages)-1]
	page.PrevCursor = Cursor{CreatedAt: newest.CreatedAt, ID: newest.ID}.Encode()
	page.NextCursor = Cursor{CreatedAt: oldest.CreatedAt, ID: oldest.ID}.Encode()
	return page
}

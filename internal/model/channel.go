package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ChannelType string

const (
	PublicChannelType  ChannelType = "public"
	PrivateChannelType ChannelType = "private"
	GroupChannelType   ChannelType = "group"
)

func (t ChannelType) Valid() bool {
	switch t {
	case PublicChannelType, PrivateChannelType, GroupChannelType:
		return true
	}
	return false
}

// ChannelSettings is persisted as a single JSON blob in the settings column.
// A NULL or empty column decodes to defaults, never an error.
type ChannelSettings struct {
	AllowFileUploads bool `json:"allow_file_uploads"`
	AllowReactions   bool `json:"allow_reactions"`
	AllowMentions    bool `json:"allow_mentions"`
	MaxMessageLength int  `json:"max_message_length"`
	SlowModeSeconds  int  `json:"slow_mode_seconds"`
	AutoDeleteDays   int  `json:"auto_delete_days"`
}

func DefaultChannelSettings() ChannelSettings {
	return ChannelSettings{
		AllowFileUploads: true,
		AllowReactions:   true,
		AllowMentions:    true,
		MaxMessageLength: 2000,
	}
}

func (s ChannelSettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ChannelSettings) Scan(src interface{}) error {
	if src == nil {
		*s = DefaultChannelSettings()
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported settings column type %T", src)
	}
	if len(raw) == 0 {
		*s = DefaultChannelSettings()
		return nil
	}
	return json.Unmarshal(raw, s)
}

type ChannelList []Channel

type Channel struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	TeamID      string          `db:"team_id" json:"team_id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Type        ChannelType     `db:"type" json:"type"`
	Settings    ChannelSettings `db:"settings" json:"settings"`
	CreatedBy   uuid.UUID       `db:"created_by" json:"created_by"`
	IsArchived  bool            `db:"is_archived" json:"is_archived"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// ChannelPatch carries the mutable channel fields; nil means keep current.
type ChannelPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Settings    *ChannelSettings `json:"settings,omitempty"`
	IsArchived  *bool            `json:"is_archived,omitempty"`
}

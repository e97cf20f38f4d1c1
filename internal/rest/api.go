package rest

import (
	"github.com/ideaforge/messaging-service/internal/model"
)

// Request and response bodies for the HTTP API.

type Error struct {
	Error string `json:"error"`
}

type CreateChannelRequest struct {
	TeamID      string                 `json:"team_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Type        model.ChannelType      `json:"type"`
	Settings    *model.ChannelSettings `json:"settings,omitempty"`
}

type ChannelListResponse struct {
	Channels model.ChannelList `json:"channels"`
}

type JoinChannelRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type SendMessageRequest struct {
	Content  string                `json:"content"`
	Type     model.MessageType     `json:"type,omitempty"`
	Metadata model.MessageMetadata `json:"metadata,omitempty"`
}

type EditMessageRequest struct {
	Content string `json:"content"`
}

type SearchResponse struct {
	Messages model.MessageList `json:"messages"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji"`
}

type ReactionsResponse struct {
	Reactions []model.Reaction `json:"reactions"`
}

type ReceiptsResponse struct {
	Receipts []model.ReadReceipt `json:"receipts"`
}

type TypingResponse struct {
	Users []model.TypingIndicator `json:"users"`
}

type NotificationsResponse struct {
	Notifications model.NotificationList `json:"notifications"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Channel   string `json:"channel,omitempty"`
}

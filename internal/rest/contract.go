//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
	"github.com/ideaforge/messaging-service/internal/pkg/pagination"
)

// Core is the messaging facade the handlers sit on.
type Core interface {
	GetChannels(ctx context.Context, teamID string) (model.ChannelList, error)
	CreateChannel(ctx context.Context, channel *model.Channel) (*model.Channel, error)
	UpdateChannel(ctx context.Context, id uuid.UUID, patch model.ChannelPatch) (*model.Channel, error)
	DeleteChannel(ctx context.Context, id uuid.UUID) error
	JoinChannel(ctx context.Context, channelID, userID uuid.UUID) error
	LeaveChannel(ctx context.Context, channelID, userID uuid.UUID) error
	IsChannelMember(ctx context.Context, channelID, userID uuid.UUID) (bool, error)

	GetMessages(ctx context.Context, channelID uuid.UUID, limit int, cursor string, direction pagination.Direction) (pagination.MessagePage, error)
	SendMessage(ctx context.Context, message *model.Message) (*model.Message, error)
	EditMessage(ctx context.Context, id uuid.UUID, content string) (*model.Message, error)
	DeleteMessage(ctx context.Context, id uuid.UUID) error
	GetMessage(ctx context.Context, id uuid.UUID) (*model.Message, error)
	SearchMessages(ctx context.Context, query string, channelID *uuid.UUID, limit int) (model.MessageList, error)

	AddReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) error
	RemoveReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) error
	GetReactions(ctx context.Context, messageID uuid.UUID) ([]model.Reaction, error)
	MarkMessageAsRead(ctx context.Context, messageID, userID uuid.UUID) error
	MarkAsRead(ctx context.Context, channelID, userID uuid.UUID) error
	GetReadReceipts(ctx context.Context, messageID uuid.UUID) ([]model.ReadReceipt, error)
	StartTyping(ctx context.Context, channelID, userID uuid.UUID) error
	StopTyping(ctx context.Context, channelID, userID uuid.UUID) error
	GetTypingUsers(ctx context.Context, channelID uuid.UUID) ([]model.TypingIndicator, error)

	UploadFile(ctx context.Context, upload *model.FileUpload, channelID, senderID uuid.UUID) (*model.Attachment, error)
	GetFile(ctx context.Context, id uuid.UUID) (*model.Attachment, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error

	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) (model.NotificationList, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID, channelID *uuid.UUID) (int, error)
	MarkNotificationAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllNotificationsAsRead(ctx context.Context, userID uuid.UUID) error
}

type JWTGenerator interface {
	GenerateConnectToken(userID string) (string, int64, error)
	GenerateSubscribeToken(userID, channelID string) (string, int64, error)
}

//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/bus"
	"github.com/ideaforge/messaging-service/internal/model"
	"github.com/ideaforge/messaging-service/internal/pkg/pagination"
)

type DBRepo interface {
	GetChannels(ctx context.Context, teamID string) (model.ChannelList, error)
	GetChannel(ctx context.Context, id uuid.UUID) (*model.Channel, error)
	CreateChannel(ctx context.Context, channel *model.Channel) error
	UpdateChannel(ctx context.Context, id uuid.UUID, patch model.ChannelPatch) (*model.Channel, error)
	DeleteChannel(ctx context.Context, id uuid.UUID) error
	AddChannelMember(ctx context.Context, channelID uuid.UUID, userID uuid.UUID) error
	RemoveChannelMember(ctx context.Context, channelID uuid.UUID, userID uuid.UUID) error
	GetChannelMembers(ctx context.Context, channelID uuid.UUID) ([]uuid.UUID, error)
	CountChannelMembers(ctx context.Context, channelID uuid.UUID) (int, error)
	CountTeamChannels(ctx context.Context, teamID string) (int, error)
	IsChannelMember(ctx context.Context, channelID uuid.UUID, userID uuid.UUID) (bool, error)

	SaveMessage(ctx context.Context, message *model.Message) error
	GetMessage(ctx context.Context, id uuid.UUID) (*model.Message, error)
	EditMessage(ctx context.Context, id uuid.UUID, content string) (*model.Message, error)
	SoftDeleteMessage(ctx context.Context, id uuid.UUID) error
	GetMessages(ctx context.Context, channelID uuid.UUID, page pagination.Page) (model.MessageList, error)
	SearchMessages(ctx context.Context, query string, channelID *uuid.UUID, limit int) (model.MessageList, error)

	AddReaction(ctx context.Context, reaction *model.Reaction) error
	RemoveReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) error
	GetReactions(ctx context.Context, messageID uuid.UUID) ([]model.Reaction, error)
	UpsertReadReceipt(ctx context.Context, messageID, userID uuid.UUID, readAt time.Time) error
	MarkChannelRead(ctx context.Context, channelID, userID uuid.UUID, readAt time.Time) error
	GetReadReceipts(ctx context.Context, messageID uuid.UUID) ([]model.ReadReceipt, error)
	UpsertTypingIndicator(ctx context.Context, channelID, userID uuid.UUID, startedAt time.Time) error
	DeleteTypingIndicator(ctx context.Context, channelID, userID uuid.UUID) error
	GetTypingUsers(ctx context.Context, channelID uuid.UUID) ([]model.TypingIndicator, error)

	SaveAttachment(ctx context.Context, attachment *model.Attachment) error
	GetAttachment(ctx context.Context, id uuid.UUID) (*model.Attachment, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

type EventBus interface {
	MessageChanged(ctx context.Context, channelID, messageID uuid.UUID) error
	TypingChanged(ctx context.Context, channelID uuid.UUID) error
	ReactionsChanged(ctx context.Context, channelID, messageID uuid.UUID) error
	ReadReceiptsChanged(ctx context.Context, channelID, messageID uuid.UUID) error

	SubscribeToMessages(channelID uuid.UUID, handler bus.MessageHandler) func()
	SubscribeToTyping(channelID uuid.UUID, handler bus.TypingHandler) func()
	SubscribeToReactions(channelID uuid.UUID, handler bus.ReactionHandler) func()
	SubscribeToReadReceipts(channelID uuid.UUID, handler bus.ReadReceiptHandler) func()
}

type Notifier interface {
	NotifyNewMessage(ctx context.Context, message *model.Message, recipientID uuid.UUID) error
	NotifyMention(ctx context.Context, message *model.Message, recipientID uuid.UUID) error
	NotifyReaction(ctx context.Context, reaction *model.Reaction, message *model.Message, recipientID uuid.UUID) error
	NotifyFileUpload(ctx context.Context, attachment *model.Attachment, message *model.Message, recipientID uuid.UUID) error
	NotifyChannelInvite(ctx context.Context, channelID, senderID, recipientID uuid.UUID, channelName string) error

	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) (model.NotificationList, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID, channelID *uuid.UUID) (int, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Subscribe(userID uuid.UUID, handler func(model.Notification)) func()
}

// Tracker is the telemetry sink for volume and capacity observations; slow
// queries reach the monitor through the gateway instead.
type Tracker interface {
	TrackMessageVolume(channelID uuid.UUID, count int)
	TrackChannelCapacity(channelID uuid.UUID, memberCount int)
}

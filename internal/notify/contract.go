//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

type NotificationRepo interface {
	SaveNotification(ctx context.Context, notification *model.Notification) error
	GetNotifications(ctx context.Context, recipientID uuid.UUID, limit, offset int) (model.NotificationList, error)
	CountUnreadNotifications(ctx context.Context, recipientID uuid.UUID, channelID *uuid.UUID) (int, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, recipientID uuid.UUID) error
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type Pusher interface {
	Publish(ctx context.Context, channel string, data interface{}) error
}

// Dispatcher builds, persists and fans out notifications. Queued wraps a
// Dispatcher with local buffering; composition, not inheritance.
type Dispatcher interface {
	Create(ctx context.Context, notification model.Notification) error
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

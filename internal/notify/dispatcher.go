package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

const bodyPreviewLength = 120

// UserChannelName is the personal realtime channel a user's clients
// subscribe to for notification delivery.
func UserChannelName(userID uuid.UUID) string {
	return fmt.Sprintf("notifications#%s", userID)
}

type dispatcher struct {
	repo   NotificationRepo
	pusher Pusher

	mu     sync.RWMutex
	nextID uint64
	subs   map[uuid.UUID]map[uint64]func(model.Notification)
}

func New(repo NotificationRepo, pusher Pusher) Dispatcher {
	return &dispatcher{
		repo:   repo,
		pusher: pusher,
		subs:   make(map[uuid.UUID]map[uint64]func(model.Notification)),
	}
}

// Create persists the notification, notifies local subscribers
// synchronously, then pushes to the recipient's personal channel.
func (d *dispatcher) Create(ctx context.Context, notification model.Notification) error {
	if !notification.Type.Valid() {
		return model.NewValidationError("notification type %q is not supported", notification.Type)
	}

	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	if notification.Data == nil {
		notification.Data = model.NotificationData{}
	}

	if err := d.repo.SaveNotification(ctx, &notification); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	d.mu.RLock()
	handlers := make([]func(model.Notification), 0, len(d.subs[notification.RecipientID]))
	for _, h := range d.subs[notification.RecipientID] {
		handlers = append(handlers, h)
	}
	d.mu.RUnlock()

	for _, h := range handlers {
		h(notification)
	}

	if d.pusher != nil {
		if err := d.pusher.Publish(ctx, UserChannelName(notification.RecipientID), notification); err != nil {
			return fmt.Errorf("failed to push notification: %w", err)
		}
	}

	return nil
}

func (d *dispatcher) senderName(ctx context.Context, senderID uuid.UUID) string {
	user, err := d.repo.GetUser(ctx, senderID.String())
	if err != nil || user.Nickname == "" {
		return "Someone"
	}
	return user.Nickname
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= bodyPreviewLength {
		return content
	}
	return string(runes[:bodyPreviewLength]) + "…"
}

func (d *dispatcher) NotifyNewMessage(ctx context.Context, message *model.Message, recipientID uuid.UUID) error {
	return d.Create(ctx, model.Notification{
		Type:        model.MessageNotification,
		ChannelID:   message.ChannelID,
		MessageID:   &message.ID,
		SenderID:    message.SenderID,
		RecipientID: recipientID,
		Title:       fmt.Sprintf("New message from %s", d.senderName(ctx, message.SenderID)),
		Body:        preview(message.Content),
	})
}

func (d *dispatcher) NotifyMention(ctx context.Context, message *model.Message, recipientID uuid.UUID) error {
	return d.Create(ctx, model.Notification{
		Type:        model.MentionNotification,
		ChannelID:   message.ChannelID,
		MessageID:   &message.ID,
		SenderID:    message.SenderID,
		RecipientID: recipientID,
		Title:       fmt.Sprintf("%s mentioned you", d.senderName(ctx, message.SenderID)),
		Body:        preview(message.Content),
	})
}

func (d *dispatcher) NotifyReaction(ctx context.Context, reaction *model.Reaction, message *model.Message, recipientID uuid.UUID) error {
	return d.Create(ctx, model.Notification{
		Type:        model.ReactionNotification,
		ChannelID:   message.ChannelID,
		MessageID:   &message.ID,
		SenderID:    reaction.UserID,
		RecipientID: recipientID,
		Title:       fmt.Sprintf("%s reacted to your message", d.senderName(ctx, reaction.UserID)),
		Body:        reaction.Emoji,
		Data:        model.NotificationData{"emoji": reaction.Emoji},
	})
}

func (d *dispatcher) NotifyFileUpload(ctx context.Context, attachment *model.Attachment, message *model.Message, recipientID uuid.UUID) error {
	return d.Create(ctx, model.Notification{
		Type:        model.FileUploadNotification,
		ChannelID:   message.ChannelID,
		MessageID:   &message.ID,
		SenderID:    message.SenderID,
		RecipientID: recipientID,
		Title:       fmt.Sprintf("%s shared a file", d.senderName(ctx, message.SenderID)),
		Body:        attachment.FileName,
		Data:        model.NotificationData{"file_name": attachment.FileName, "url": attachment.URL},
	})
}

func (d *dispatcher) NotifyChannelInvite(ctx context.Context, channelID, senderID, recipientID uuid.UUID, channelName string) error {
	return d.Create(ctx, model.Notification{
		Type:        model.ChannelInviteNotification,
		ChannelID:   channelID,
		SenderID:    senderID,
		RecipientID: recipientID,
		Title:       fmt.Sprintf("%s invited you to #%s", d.senderName(ctx, senderID), channelName),
		Body:        fmt.Sprintf("You were added to #%s", channelName),
		Data:        model.NotificationData{"channel_name": channelName},
	})
}

func (d *dispatcher) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) (model.NotificationList, error) {
	return d.repo.GetNotifications(ctx, userID, limit, offset)
}

func (d *dispatcher) GetUnreadCount(ctx context.Context, userID uuid.UUID, channelID *uuid.UUID) (int, error) {
	return d.repo.CountUnreadNotifications(ctx, userID, channelID)
}

func (d *dispatcher) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return d.repo.MarkNotificationRead(ctx, id)
}

func (d *dispatcher) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return d.repo.MarkAllNotificationsRead(ctx, userID)
}

func (d *dispatcher) Subscribe(userID uuid.UUID, handler func(model.Notification)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	if d.subs[userID] == nil {
		d.subs[userID] = make(map[uint64]func(model.Notification))
	}
	d.subs[userID][id] = handler

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subs[userID], id)
	}
}

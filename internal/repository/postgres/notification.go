package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

var notificationColumns = []string{
	"id",
	"type",
	"channel_id",
	"message_id",
	"sender_id",
	"recipient_id",
	"title",
	"body",
	"data",
	"is_read",
	"created_at",
}

func (r *Repository) SaveNotification(ctx context.Context, notification *model.Notification) error {
	query, args, err := sq.Insert("notifications").
		Columns(notificationColumns...).
		Values(
			notification.ID,
			notification.Type,
			notification.ChannelID,
			notification.MessageID,
			notification.SenderID,
			notification.RecipientID,
			notification.Title,
			notification.Body,
			notification.Data,
			notification.IsRead,
			notification.CreatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save notification: %v", err)
	}

	return nil
}

func (r *Repository) GetNotifications(ctx context.Context, recipientID uuid.UUID, limit, offset int) (model.NotificationList, error) {
	if limit <= 0 {
		limit = 50
	}

	query, args, err := sq.Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var notifications model.NotificationList
	err = r.Chk(ctx).SelectContext(ctx, &notifications, query, args...)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *Repository) CountUnreadNotifications(ctx context.Context, recipientID uuid.UUID, channelID *uuid.UUID) (int, error) {
	queryBuilder := sq.Select("COUNT(*)").
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID, "is_read": false})

	if channelID != nil {
		queryBuilder = queryBuilder.Where(sq.Eq{"channel_id": *channelID})
	}

	query, args, err := queryBuilder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	var count int
	err = r.Chk(ctx).GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	query, args, err := sq.Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return model.NewNotFoundError("notification", id.String())
	}

	return nil
}

func (r *Repository) MarkAllNotificationsRead(ctx context.Context, recipientID uuid.UUID) error {
	query, args, err := sq.Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"recipient_id": recipientID, "is_read": false}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
	"github.com/ideaforge/messaging-service/internal/pkg/pagination"
)

var messageColumns = []string{
	"id",
	"channel_id",
	"sender_id",
	"type",
	"content",
	"metadata",
	"created_at",
	"edited_at",
	"is_deleted",
	"is_archived",
}

func (r *Repository) SaveMessage(ctx context.Context, message *model.Message) error {
	query, args, err := sq.Insert("messages").
		Columns("id", "channel_id", "sender_id", "type", "content", "metadata", "created_at").
		Values(message.ID, message.ChannelID, message.SenderID, message.Type, message.Content, message.Metadata, message.CreatedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save message: %v", err)
	}

	return nil
}

func (r *Repository) GetMessage(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	query, args, err := sq.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var message model.Message
	err = r.Chk(ctx).GetContext(ctx, &message, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("message", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &message, nil
}

func (r *Repository) EditMessage(ctx context.Context, id uuid.UUID, content string) (*model.Message, error) {
	query, args, err := sq.Update("messages").
		Set("content", content).
		Set("edited_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "is_deleted": false}).
		Suffix("RETURNING " + joinColumns(messageColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var message model.Message
	err = r.Chk(ctx).GetContext(ctx, &message, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("message", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// SoftDeleteMessage marks the message deleted; only the retention purge
// removes rows physically.
func (r *Repository) SoftDeleteMessage(ctx context.Context, id uuid.UUID) error {
	query, args, err := sq.Update("messages").
		Set("is_deleted", true).
		Where(sq.Eq{"id": id, "is_deleted": false}).
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
		return model.NewNotFoundError("message", id.String())
	}

	return nil
}

// GetMessages returns a history page, always newest-first. The composite
// (created_at, id) comparison keeps consecutive pages free of skips and
// duplicates even when timestamps collide.
func (r *Repository) GetMessages(ctx context.Context, channelID uuid.UUID, page pagination.Page) (model.MessageList, error) {
	queryBuilder := sq.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"channel_id": channelID}).
		Where(sq.Eq{"is_deleted": false}).
		Limit(uint64(pagination.ClampLimit(page.Limit)))

	ascending := false
	if page.Cursor != nil {
		switch page.Direction {
		case pagination.After:
			queryBuilder = queryBuilder.
				Where(sq.Expr("(created_at, id) > (?, ?)", page.Cursor.CreatedAt, page.Cursor.ID))
			ascending = true
		default:
			queryBuilder = queryBuilder.
				Where(sq.Expr("(created_at, id) < (?, ?)", page.Cursor.CreatedAt, page.Cursor.ID))
		}
	}

	if ascending {
		queryBuilder = queryBuilder.OrderBy("created_at ASC", "id ASC")
	} else {
		queryBuilder = queryBuilder.OrderBy("created_at DESC", "id DESC")
	}

	query, args, err := queryBuilder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var messages model.MessageList
	err = r.Chk(ctx).SelectContext(ctx, &messages, query, args...)
	if err != nil {
		return nil, err
	}

	if ascending {
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}

	return messages, nil
}

func (r *Repository) SearchMessages(ctx context.Context, query string, channelID *uuid.UUID, limit int) (model.MessageList, error) {
	queryBuilder := sq.Select(messageColumns...).
		From("messages").
		Where(sq.Eq{"is_deleted": false}).
		Where(sq.Eq{"is_archived": false}).
		Where(sq.ILike{"content": "%" + query + "%"}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(pagination.ClampLimit(limit)))

	if channelID != nil {
		queryBuilder = queryBuilder.Where(sq.Eq{"channel_id": *channelID})
	}

	sqlQuery, args, err := queryBuilder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var messages model.MessageList
	err = r.Chk(ctx).SelectContext(ctx, &messages, sqlQuery, args...)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *Repository) ArchiveMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := sq.Update("messages").
		Set("is_archived", true).
		Where(sq.Lt{"created_at": cutoff}).
		Where(sq.Eq{"is_archived": false}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *Repository) PurgeMessagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := sq.Delete("messages").
		Where(sq.Lt{"created_at": cutoff}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build sql query: %v", err)
	}

	res, err := r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

// AddReaction is idempotent: re-adding the same (message, user, emoji)
// triple is a no-op, never a duplicate row.
func (r *Repository) AddReaction(ctx context.Context, reaction *model.Reaction) error {
	query, args, err := sq.Insert("reactions").
		Columns("message_id", "user_id", "emoji", "created_at").
		Values(reaction.MessageID, reaction.UserID, reaction.Emoji, reaction.CreatedAt).
		Suffix("ON CONFLICT (message_id, user_id, emoji) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) RemoveReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) error {
	query, args, err := sq.Delete("reactions").
		Where(sq.And{
			sq.Eq{"message_id": messageID},
			sq.Eq{"user_id": userID},
			sq.Eq{"emoji": emoji},
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) GetReactions(ctx context.Context, messageID uuid.UUID) ([]model.Reaction, error) {
	query, args, err := sq.Select("message_id", "user_id", "emoji", "created_at").
		From("reactions").
		Where(sq.Eq{"message_id": messageID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var reactions []model.Reaction
	err = r.Chk(ctx).SelectContext(ctx, &reactions, query, args...)
	if err != nil {
		return nil, err
	}

	return reactions, nil
}

// UpsertReadReceipt keeps at most one receipt per (message, user); repeats
// refresh read_at.
func (r *Repository) UpsertReadReceipt(ctx context.Context, messageID, userID uuid.UUID, readAt time.Time) error {
	query, args, err := sq.Insert("read_receipts").
		Columns("message_id", "user_id", "read_at").
		Values(messageID, userID, readAt).
		Suffix("ON CONFLICT (message_id, user_id) DO UPDATE SET read_at = EXCLUDED.read_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

// MarkChannelRead upserts a receipt for every visible message in the channel.
func (r *Repository) MarkChannelRead(ctx context.Context, channelID, userID uuid.UUID, readAt time.Time) error {
	selectBuilder := sq.Select("id").
		Column(sq.Expr("?", userID)).
		Column(sq.Expr("?", readAt)).
		From("messages").
		Where(sq.Eq{"channel_id": channelID, "is_deleted": false})

	query, args, err := sq.Insert("read_receipts").
		Columns("message_id", "user_id", "read_at").
		Select(selectBuilder).
		Suffix("ON CONFLICT (message_id, user_id) DO UPDATE SET read_at = EXCLUDED.read_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) GetReadReceipts(ctx context.Context, messageID uuid.UUID) ([]model.ReadReceipt, error) {
	query, args, err := sq.Select("message_id", "user_id", "read_at").
		From("read_receipts").
		Where(sq.Eq{"message_id": messageID}).
		OrderBy("read_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var receipts []model.ReadReceipt
	err = r.Chk(ctx).SelectContext(ctx, &receipts, query, args...)
	if err != nil {
		return nil, err
	}

	return receipts, nil
}

func (r *Repository) UpsertTypingIndicator(ctx context.Context, channelID, userID uuid.UUID, startedAt time.Time) error {
	query, args, err := sq.Insert("typing_indicators").
		Columns("channel_id", "user_id", "started_at").
		Values(channelID, userID, startedAt).
		Suffix("ON CONFLICT (channel_id, user_id) DO UPDATE SET started_at = EXCLUDED.started_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) DeleteTypingIndicator(ctx context.Context, channelID, userID uuid.UUID) error {
	query, args, err := sq.Delete("typing_indicators").
		Where(sq.And{
			sq.Eq{"channel_id": channelID},
			sq.Eq{"user_id": userID},
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

// GetTypingUsers filters by the freshness window at read time; stale
// indicators are never returned and expire without explicit cleanup.
func (r *Repository) GetTypingUsers(ctx context.Context, channelID uuid.UUID) ([]model.TypingIndicator, error) {
	cutoff := time.Now().Add(-model.TypingFreshness)

	query, args, err := sq.Select("channel_id", "user_id", "started_at").
		From("typing_indicators").
		Where(sq.Eq{"channel_id": channelID}).
		Where(sq.Gt{"started_at": cutoff}).
		OrderBy("started_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var indicators []model.TypingIndicator
	err = r.Chk(ctx).SelectContext(ctx, &indicators, query, args...)
	if err != nil {
		return nil, err
	}

	return indicators, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

var channelColumns = []string{
	"id",
	"team_id",
	"name",
	"description",
	"type",
	"settings",
	"created_by",
	"is_archived",
	"created_at",
	"updated_at",
}

func (r *Repository) GetChannels(ctx context.Context, teamID string) (model.ChannelList, error) {
	queryBuilder := sq.Select(channelColumns...).
		From("channels").
		OrderBy("created_at DESC")

	if teamID != "" {
		queryBuilder = queryBuilder.Where(sq.Eq{"team_id": teamID})
	}

	query, args, err := queryBuilder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var channels model.ChannelList
	err = r.Chk(ctx).SelectContext(ctx, &channels, query, args...)
	if err != nil {
		return nil, err
	}

	return channels, nil
}

func (r *Repository) GetChannel(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	query, args, err := sq.Select(channelColumns...).
		From("channels").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var channel model.Channel
	err = r.Chk(ctx).GetContext(ctx, &channel, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("channel", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &channel, nil
}

func (r *Repository) CreateChannel(ctx context.Context, channel *model.Channel) error {
	query, args, err := sq.Insert("channels").
		Columns("id", "team_id", "name", "description", "type", "settings", "created_by").
		Values(channel.ID, channel.TeamID, channel.Name, channel.Description, channel.Type, channel.Settings, channel.CreatedBy).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to create channel: %v", err)
	}

	return nil
}

func (r *Repository) UpdateChannel(ctx context.Context, id uuid.UUID, patch model.ChannelPatch) (*model.Channel, error) {
	queryBuilder := sq.Update("channels").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	if patch.Name != nil {
		queryBuilder = queryBuilder.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		queryBuilder = queryBuilder.Set("description", *patch.Description)
	}
	if patch.Settings != nil {
		queryBuilder = queryBuilder.Set("settings", *patch.Settings)
	}
	if patch.IsArchived != nil {
		queryBuilder = queryBuilder.Set("is_archived", *patch.IsArchived)
	}

	query, args, err := queryBuilder.
		Suffix("RETURNING " + joinColumns(channelColumns)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var channel model.Channel
	err = r.Chk(ctx).GetContext(ctx, &channel, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("channel", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &channel, nil
}

// DeleteChannel removes the channel; dependent rows cascade via foreign keys.
func (r *Repository) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	query, args, err := sq.Delete("channels").
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
		return model.NewNotFoundError("channel", id.String())
	}

	return nil
}

func (r *Repository) AddChannelMember(ctx context.Context, channelID uuid.UUID, userID uuid.UUID) error {
	query, args, err := sq.Insert("channel_members").
		Columns("channel_id", "user_id").
		Values(channelID, userID).
		Suffix("ON CONFLICT (channel_id, user_id) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) RemoveChannelMember(ctx context.Context, channelID uuid.UUID, userID uuid.UUID) error {
	query, args, err := sq.Delete("channel_members").
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

func (r *Repository) IsChannelMember(ctx context.Context, channelID uuid.UUID, userID uuid.UUID) (bool, error) {
	query, args, err := sq.
		Select("COUNT(*) > 0").
		From("channel_members").
		Where(sq.And{
			sq.Eq{"channel_id": channelID},
			sq.Eq{"user_id": userID},
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build sql query: %v", err)
	}

	var isMember bool
	err = r.Chk(ctx).GetContext(ctx, &isMember, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to check channel membership: %v", err)
	}

	return isMember, nil
}

func (r *Repository) GetChannelMembers(ctx context.Context, channelID uuid.UUID) ([]uuid.UUID, error) {
	query, args, err := sq.Select("user_id").
		From("channel_members").
		Where(sq.Eq{"channel_id": channelID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var members []uuid.UUID
	err = r.Chk(ctx).SelectContext(ctx, &members, query, args...)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) CountChannelMembers(ctx context.Context, channelID uuid.UUID) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("channel_members").
		Where(sq.Eq{"channel_id": channelID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
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

func (r *Repository) CountTeamChannels(ctx context.Context, teamID string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("channels").
		Where(sq.Eq{"team_id": teamID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
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

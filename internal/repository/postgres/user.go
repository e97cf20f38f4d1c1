package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ideaforge/messaging-service/internal/model"
)

func (r *Repository) UpsertUser(ctx context.Context, user *model.User) error {
	query, args, err := sq.Insert("users").
		Columns("id", "nickname", "avatar_url").
		Values(user.ID, user.Nickname, user.AvatarURL).
		Suffix("ON CONFLICT (id) DO UPDATE SET nickname = EXCLUDED.nickname, avatar_url = EXCLUDED.avatar_url").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)

	return err
}

func (r *Repository) GetUser(ctx context.Context, id string) (*model.User, error) {
	query, args, err := sq.Select("id", "nickname", "avatar_url").
		From("users").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var user model.User
	err = r.Chk(ctx).GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("user", id)
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) UpdateUserNickname(ctx context.Context, userID, newNickname string) error {
	query, args, err := sq.Update("users").
		Set("nickname", newNickname).
		Where(sq.Eq{"id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUserAvatar(ctx context.Context, userID, avatarLink string) error {
	query, args, err := sq.Update("users").
		Set("avatar_url", avatarLink).
		Where(sq.Eq{"id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}

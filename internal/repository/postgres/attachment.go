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

var attachmentColumns = []string{
	"id",
	"message_id",
	"file_name",
	"byte_size",
	"mime_type",
	"url",
	"storage_path",
	"created_at",
}

func (r *Repository) SaveAttachment(ctx context.Context, attachment *model.Attachment) error {
	query, args, err := sq.Insert("attachments").
		Columns("id", "message_id", "file_name", "byte_size", "mime_type", "url", "storage_path", "created_at").
		Values(
			attachment.ID,
			attachment.MessageID,
			attachment.FileName,
			attachment.ByteSize,
			attachment.MimeType,
			attachment.URL,
			attachment.StoragePath,
			attachment.CreatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.Chk(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save attachment: %v", err)
	}

	return nil
}

func (r *Repository) GetAttachment(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	query, args, err := sq.Select(attachmentColumns...).
		From("attachments").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var attachment model.Attachment
	err = r.Chk(ctx).GetContext(ctx, &attachment, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("attachment", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &attachment, nil
}

func (r *Repository) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	query, args, err := sq.Delete("attachments").
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
		return model.NewNotFoundError("attachment", id.String())
	}

	return nil
}

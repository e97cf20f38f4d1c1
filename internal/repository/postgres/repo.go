package postgres

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ideaforge/messaging-service/internal/config"
)

type txKey struct{}

// executor is satisfied by both *sqlx.DB and *sqlx.Tx so queries run the
// same inside and outside a transaction.
type executor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type Repository struct {
	connection *sqlx.DB
}

func New(cfg *config.Config) *Repository {
	conStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.Host, cfg.Postgres.Port)

	conn, err := sqlx.Connect("postgres", conStr)
	if err != nil {
		log.Fatal("error connect: ", err)
	}

	return &Repository{
		connection: conn,
	}
}

func (r *Repository) Close() {
	_ = r.connection.Close()
}

// WithTx runs cb inside a transaction; the transaction travels through the
// context so nested repository calls pick it up via Chk.
func (r *Repository) WithTx(ctx context.Context, cb func(ctx context.Context) error) error {
	tx, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := cb(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Chk resolves the executor for ctx: the ambient transaction when one is
// in flight, the pooled connection otherwise.
func (r *Repository) Chk(ctx context.Context) executor {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return r.connection
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}

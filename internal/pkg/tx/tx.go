package tx

import (
	"context"
	"net/http"
)

type key string

const KeyTx = key("tx")

// TxRepo is the slice of the repository the middleware needs.
type TxRepo interface {
	WithTx(ctx context.Context, cb func(ctx context.Context) error) error
}

type Tx struct {
	DbRepo TxRepo
}

// TxMiddlewareHTTP makes the repository's transactional executor available
// to handlers via the request context.
func TxMiddlewareHTTP(repo TxRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), KeyTx, Tx{DbRepo: repo})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TxExecute runs cb inside a transaction when one is available in ctx and
// falls back to plain execution otherwise, so call sites stay uniform.
func TxExecute(ctx context.Context, cb func(ctx context.Context) error) error {
	if t, ok := ctx.Value(KeyTx).(Tx); ok && t.DbRepo != nil {
		return t.DbRepo.WithTx(ctx, cb)
	}
	return cb(ctx)
}

//go:generate mockgen -destination=mock_contract_test.go -package=${GOPACKAGE} -source=contract.go
package user

import (
	"context"

	"github.com/ideaforge/messaging-service/internal/model"
)

type DBRepo interface {
	UpsertUser(ctx context.Context, user *model.User) error
	UpdateUserNickname(ctx context.Context, userID, newNickname string) error
	UpdateUserAvatar(ctx context.Context, userID, avatarLink string) error
}

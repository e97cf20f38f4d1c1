package user

import (
	"context"
	"encoding/json"
	"fmt"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/ideaforge/messaging-service/internal/config"
	"github.com/ideaforge/messaging-service/internal/model"
)

// Handler keeps the local user directory in sync with profile changes
// published on the databus.
type Handler struct {
	repository DBRepo
}

func New(repo DBRepo) *Handler {
	return &Handler{repository: repo}
}

// Handler consumes a user-updated event. Events may carry the full
// profile or only the changed field.
func (h *Handler) Handler(ctx context.Context, msg []byte) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)
	logger.AddFuncName("UserUpdatedHandler")

	var event model.UserUpdatedEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		logger.Error(fmt.Sprintf("failed to unmarshal user event: %v", err))
		return
	}

	if event.UserID == "" {
		logger.Error("user event without user_id, skipping")
		return
	}

	var err error
	switch {
	case event.Nickname != "" && event.AvatarURL != "":
		err = h.repository.UpsertUser(ctx, &model.User{
			ID:        event.UserID,
			Nickname:  event.Nickname,
			AvatarURL: event.AvatarURL,
		})
	case event.Nickname != "":
		err = h.repository.UpdateUserNickname(ctx, event.UserID, event.Nickname)
	case event.AvatarURL != "":
		err = h.repository.UpdateUserAvatar(ctx, event.UserID, event.AvatarURL)
	default:
		logger.Error(fmt.Sprintf("user event for %s carries no changes, skipping", event.UserID))
		return
	}
	if err != nil {
		logger.Error(fmt.Sprintf("failed to sync user %s: %v", event.UserID, err))
		return
	}

	logger.Info(fmt.Sprintf("user %s synced", event.UserID))
}

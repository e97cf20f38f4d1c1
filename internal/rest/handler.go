package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/ideaforge/messaging-service/internal/config"
	"github.com/ideaforge/messaging-service/internal/model"
	"github.com/ideaforge/messaging-service/internal/pkg/pagination"
	"github.com/ideaforge/messaging-service/internal/pkg/tx"
)

type Handler struct {
	core         Core
	jwtGenerator JWTGenerator
}

func New(core Core, jwtGenerator JWTGenerator) *Handler {
	return &Handler{
		core:         core,
		jwtGenerator: jwtGenerator,
	}
}

// Register attaches all routes to the router. The auth, logger and tx
// middlewares are expected to already be installed on it.
func (h *Handler) Register(router chi.Router) {
	router.Route("/api/messaging", func(r chi.Router) {
		r.Get("/channels", h.GetChannels)
		r.Post("/channels", h.CreateChannel)
		r.Patch("/channels/{channelId}", h.UpdateChannel)
		r.Delete("/channels/{channelId}", h.DeleteChannel)
		r.Post("/channels/{channelId}/members", h.JoinChannel)
		r.Delete("/channels/{channelId}/members", h.LeaveChannel)

		r.Get("/channels/{channelId}/messages", h.GetMessages)
		r.Post("/channels/{channelId}/messages", h.SendMessage)
		r.Get("/messages/search", h.SearchMessages)
		r.Get("/messages/{messageId}", h.GetMessage)
		r.Patch("/messages/{messageId}", h.EditMessage)
		r.Delete("/messages/{messageId}", h.DeleteMessage)

		r.Post("/messages/{messageId}/reactions", h.AddReaction)
		r.Delete("/messages/{messageId}/reactions", h.RemoveReaction)
		r.Get("/messages/{messageId}/reactions", h.GetReactions)
		r.Post("/messages/{messageId}/read", h.MarkMessageAsRead)
		r.Get("/messages/{messageId}/receipts", h.GetReadReceipts)
		r.Post("/channels/{channelId}/read", h.MarkChannelAsRead)
		r.Post("/channels/{channelId}/typing", h.StartTyping)
		r.Delete("/channels/{channelId}/typing", h.StopTyping)
		r.Get("/channels/{channelId}/typing", h.GetTypingUsers)

		r.Post("/channels/{channelId}/files", h.UploadFile)
		r.Get("/files/{fileId}", h.GetFile)
		r.Delete("/files/{fileId}", h.DeleteFile)

		r.Get("/notifications", h.GetNotifications)
		r.Get("/notifications/unread", h.GetUnreadCount)
		r.Post("/notifications/{notificationId}/read", h.MarkNotificationAsRead)
		r.Post("/notifications/read-all", h.MarkAllNotificationsAsRead)

		r.Get("/realtime/connect-token", h.GetConnectAccessToken)
		r.Get("/channels/{channelId}/subscribe-token", h.GetChannelSubscribeToken)
	})
}

func (h *Handler) GetChannels(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetChannels")

	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		h.writeError(w, "team_id is required", http.StatusBadRequest)
		return
	}

	channels, err := h.core.GetChannels(r.Context(), teamID)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, ChannelListResponse{Channels: channels}, http.StatusOK)
}

func (h *Handler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("CreateChannel")

	var req CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	creatorID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get creator ID")
		h.writeError(w, "failed to get creator ID", http.StatusInternalServerError)
		return
	}

	creator, err := uuid.Parse(creatorID)
	if err != nil {
		logger.Error(fmt.Sprintf("invalid creator ID: %v", err))
		h.writeError(w, "invalid creator ID", http.StatusBadRequest)
		return
	}

	channel := &model.Channel{
		TeamID:      req.TeamID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		CreatedBy:   creator,
	}
	if req.Settings != nil {
		channel.Settings = *req.Settings
	}

	var created *model.Channel
	err = tx.TxExecute(r.Context(), func(ctx context.Context) error {
		created, err = h.core.CreateChannel(ctx, channel)
		return err
	})
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	logger.Info(fmt.Sprintf("channel %s created in team %s", created.ID, created.TeamID))
	h.writeJSON(w, created, http.StatusCreated)
}

func (h *Handler) UpdateChannel(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("UpdateChannel")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var patch model.ChannelPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.core.UpdateChannel(r.Context(), channelID, patch)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, updated, http.StatusOK)
}

func (h *Handler) DeleteChannel(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("DeleteChannel")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.core.DeleteChannel(r.Context(), channelID); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) JoinChannel(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("JoinChannel")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Without an explicit user in the body the caller joins themselves.
	userID := caller
	var req JoinChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.UserID != "" {
		userID, err = uuid.Parse(req.UserID)
		if err != nil {
			h.writeError(w, "invalid user_id", http.StatusBadRequest)
			return
		}
	}

	err = tx.TxExecute(r.Context(), func(ctx context.Context) error {
		return h.core.JoinChannel(ctx, channelID, userID)
	})
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	logger.Info(fmt.Sprintf("user %s joined channel %s", userID, channelID))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LeaveChannel(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("LeaveChannel")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.core.LeaveChannel(r.Context(), channelID, caller); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetMessages")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	direction := pagination.Before
	if r.URL.Query().Get("direction") == "forward" {
		direction = pagination.After
	}

	page, err := h.core.GetMessages(r.Context(), channelID, limit, r.URL.Query().Get("cursor"), direction)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, page, http.StatusOK)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SendMessage")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	message := &model.Message{
		ChannelID: channelID,
		SenderID:  caller,
		Content:   req.Content,
		Type:      req.Type,
		Metadata:  req.Metadata,
	}

	var sent *model.Message
	err = tx.TxExecute(r.Context(), func(ctx context.Context) error {
		sent, err = h.core.SendMessage(ctx, message)
		return err
	})
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, sent, http.StatusCreated)
}

func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetMessage")

	messageID, err := h.pathID(r, "messageId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	message, err := h.core.GetMessage(r.Context(), messageID)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, message, http.StatusOK)
}

func (h *Handler) EditMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("EditMessage")

	messageID, err := h.pathID(r, "messageId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	edited, err := h.core.EditMessage(r.Context(), messageID, req.Content)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, edited, http.StatusOK)
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("DeleteMessage")

	messageID, err := h.pathID(r, "messageId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.core.DeleteMessage(r.Context(), messageID); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SearchMessages(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("SearchMessages")

	query := r.URL.Query().Get("q")

	var channelID *uuid.UUID
	if raw := r.URL.Query().Get("channel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, "invalid channel_id", http.StatusBadRequest)
			return
		}
		channelID = &id
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	messages, err := h.core.SearchMessages(r.Context(), query, channelID, limit)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, SearchResponse{Messages: messages}, http.StatusOK)
}

func (h *Handler) AddReaction(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("AddReaction")

	messageID, err := h.pathID(r, "messageId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.core.AddReaction(r.Context(), messageID, caller, req.Emoji); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveReaction(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("RemoveReaction")

	messageID, err := h.pathID(r, "messageId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	emoji := r.URL.Query().Get("emoji")
	if emoji == "" {
		h.writeError(w, "emoji is required", http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.core.RemoveReaction(r.Context(), messageID, caller, emoji); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetReactions(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetReactions")

	messageID, err := h.pathID(r, "messageId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	reactions, err := h.core.GetReactions(r.Context(), messageID)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, ReactionsResponse{Reactions: reactions}, http.StatusOK)
}

func (h *Handler) MarkMessageAsRead(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("MarkMessageAsRead")

	messageID, err := h.pathID(r, "messageId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.core.MarkMessageAsRead(r.Context(), messageID, caller); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkChannelAsRead(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("MarkChannelAsRead")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.core.MarkAsRead(r.Context(), channelID, caller); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetReadReceipts(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetReadReceipts")

	messageID, err := h.pathID(r, "messageId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	receipts, err := h.core.GetReadReceipts(r.Context(), messageID)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, ReceiptsResponse{Receipts: receipts}, http.StatusOK)
}

func (h *Handler) StartTyping(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("StartTyping")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.core.StartTyping(r.Context(), channelID, caller); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) StopTyping(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("StopTyping")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.core.StopTyping(r.Context(), channelID, caller); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetTypingUsers(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetTypingUsers")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	users, err := h.core.GetTypingUsers(r.Context(), channelID)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, TypingResponse{Users: users}, http.StatusOK)
}

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("UploadFile")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var upload model.FileUpload
	if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
		logger.Error(fmt.Sprintf("failed to decode request: %v", err))
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var attachment *model.Attachment
	err = tx.TxExecute(r.Context(), func(ctx context.Context) error {
		attachment, err = h.core.UploadFile(ctx, &upload, channelID, caller)
		return err
	})
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	logger.Info(fmt.Sprintf("file %s uploaded to channel %s", attachment.ID, channelID))
	h.writeJSON(w, attachment, http.StatusCreated)
}

func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetFile")

	fileID, err := h.pathID(r, "fileId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	attachment, err := h.core.GetFile(r.Context(), fileID)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, attachment, http.StatusOK)
}

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("DeleteFile")

	fileID, err := h.pathID(r, "fileId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.core.DeleteFile(r.Context(), fileID); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetNotifications")

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	limit, offset := 50, 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, "invalid offset", http.StatusBadRequest)
			return
		}
	}

	notifications, err := h.core.GetNotifications(r.Context(), caller, limit, offset)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, NotificationsResponse{Notifications: notifications}, http.StatusOK)
}

func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetUnreadCount")

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var channelID *uuid.UUID
	if raw := r.URL.Query().Get("channel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, "invalid channel_id", http.StatusBadRequest)
			return
		}
		channelID = &id
	}

	count, err := h.core.GetUnreadCount(r.Context(), caller, channelID)
	if err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	h.writeJSON(w, UnreadCountResponse{Count: count}, http.StatusOK)
}

func (h *Handler) MarkNotificationAsRead(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("MarkNotificationAsRead")

	notificationID, err := h.pathID(r, "notificationId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.core.MarkNotificationAsRead(r.Context(), notificationID); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkAllNotificationsAsRead(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("MarkAllNotificationsAsRead")

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.core.MarkAllNotificationsAsRead(r.Context(), caller); err != nil {
		h.writeServiceError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetConnectAccessToken(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetConnectAccessToken")

	userUUID, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		logger.Error("failed to get user UUID")
		h.writeError(w, "failed to get user UUID", http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.jwtGenerator.GenerateConnectToken(userUUID)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate access token: %v", err))
		h.writeError(w, fmt.Sprintf("failed to generate access token: %v", err), http.StatusInternalServerError)
		return
	}

	logger.Info(fmt.Sprintf("generated access token for user %s", userUUID))

	h.writeJSON(w, TokenResponse{Token: token, ExpiresAt: expiresAt}, http.StatusOK)
}

func (h *Handler) GetChannelSubscribeToken(w http.ResponseWriter, r *http.Request) {
	logger := logger_lib.FromContext(r.Context(), config.KeyLogger)
	logger.AddFuncName("GetChannelSubscribeToken")

	channelID, err := h.pathID(r, "channelId")
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	caller, err := h.callerID(r)
	if err != nil {
		logger.Error(err.Error())
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	isMember, err := h.core.IsChannelMember(r.Context(), channelID, caller)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to check channel membership: %v", err))
		h.writeError(w, fmt.Sprintf("failed to check channel membership: %v", err), http.StatusInternalServerError)
		return
	}

	if !isMember {
		logger.Error("user is not a member of the channel")
		h.writeError(w, "user is not a member of the channel", http.StatusForbidden)
		return
	}

	token, expiresAt, err := h.jwtGenerator.GenerateSubscribeToken(caller.String(), channelID.String())
	if err != nil {
		logger.Error(fmt.Sprintf("failed to generate subscribe token: %v", err))
		h.writeError(w, fmt.Sprintf("failed to generate subscribe token: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, TokenResponse{Token: token, ExpiresAt: expiresAt, Channel: channelID.String()}, http.StatusOK)
}

// ----------------------------- helpers -----------------------------

func (h *Handler) pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func (h *Handler) callerID(r *http.Request) (uuid.UUID, error) {
	raw, ok := r.Context().Value(config.KeyUUID).(string)
	if !ok {
		return uuid.Nil, errors.New("failed to get caller ID")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid caller ID")
	}
	return id, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(Error{Error: message})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, logger logger_lib.LoggerInterface, err error) {
	if errors.Is(err, context.Canceled) {
		h.writeError(w, "request superseded by a newer one", http.StatusConflict)
		return
	}
	logger.Error(err.Error())
	h.writeError(w, err.Error(), statusCode(model.CodeOf(err)))
}

func statusCode(code model.ErrorCode) int {
	switch code {
	case model.CodeValidation:
		return http.StatusBadRequest
	case model.CodeNotFound:
		return http.StatusNotFound
	case model.CodeCapacityExceeded:
		return http.StatusConflict
	case model.CodeRateLimited:
		return http.StatusTooManyRequests
	case model.CodeCircuitOpen, model.CodeTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/config"
	"github.com/ideaforge/messaging-service/internal/model"
	"github.com/ideaforge/messaging-service/internal/pkg/cache"
	"github.com/ideaforge/messaging-service/internal/pkg/pagination"
	"github.com/ideaforge/messaging-service/internal/pkg/ratelimit"
	"github.com/ideaforge/messaging-service/internal/pkg/validator"
	"github.com/ideaforge/messaging-service/internal/resilience"
)

type inflightSearch struct {
	cancel context.CancelFunc
}

// Service is the messaging core facade. Every operation runs the same
// pipeline: rate-limit admission, input validation, the gateway-wrapped
// store call, then event and notification fanout.
type Service struct {
	repo      DBRepo
	gateway   *resilience.Gateway
	limiter   *ratelimit.Limiter
	cache     *cache.Cache
	bus       EventBus
	notifier  Notifier
	tracker   Tracker
	validator *validator.Validator
	limits    config.Limits
	tierFor   func(userID string) ratelimit.Tier

	searchMu sync.Mutex
	searches map[string]*inflightSearch

	volumeMu sync.Mutex
	volume   map[uuid.UUID]int
}

type Option func(*Service)

// WithTierResolver overrides the caller-tier lookup; by default every
// caller is billed as free tier.
func WithTierResolver(fn func(userID string) ratelimit.Tier) Option {
	return func(s *Service) {
		s.tierFor = fn
	}
}

func New(
	repo DBRepo,
	gateway *resilience.Gateway,
	limiter *ratelimit.Limiter,
	c *cache.Cache,
	eventBus EventBus,
	notifier Notifier,
	tracker Tracker,
	limits config.Limits,
	opts ...Option,
) *Service {
	s := &Service{
		repo:      repo,
		gateway:   gateway,
		limiter:   limiter,
		cache:     c,
		bus:       eventBus,
		notifier:  notifier,
		tracker:   tracker,
		validator: validator.New(),
		limits:    limits,
		tierFor:   func(string) ratelimit.Tier { return ratelimit.TierFree },
		searches:  make(map[string]*inflightSearch),
		volume:    make(map[uuid.UUID]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// admit applies sliding-window admission for the caller taken from the
// request context. Rejections never consume the gateway or the store.
func (s *Service) admit(ctx context.Context) error {
	callerID, ok := ctx.Value(config.KeyUUID).(string)
	if !ok || callerID == "" {
		return model.NewValidationError("caller identity is missing")
	}

	if !s.limiter.Allow(callerID, s.tierFor(callerID)) {
		return model.NewRateLimitError(callerID)
	}

	return nil
}

func (s *Service) caller(ctx context.Context) string {
	callerID, _ := ctx.Value(config.KeyUUID).(string)
	return callerID
}

func (s *Service) GetChannels(ctx context.Context, teamID string) (model.ChannelList, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	key := "channels:" + teamID
	if cached, ok := s.cache.Get(key); ok {
		return cached.(model.ChannelList), nil
	}

	var channels model.ChannelList
	err := s.gateway.Do(ctx, "get_channels", func(ctx context.Context) error {
		var err error
		channels, err = s.repo.GetChannels(ctx, teamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, channels, 0)

	return channels, nil
}

func (s *Service) CreateChannel(ctx context.Context, channel *model.Channel) (*model.Channel, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateCreateChannel(channel); err != nil {
		return nil, err
	}

	var teamChannels int
	err := s.gateway.Do(ctx, "count_team_channels", func(ctx context.Context) error {
		var err error
		teamChannels, err = s.repo.CountTeamChannels(ctx, channel.TeamID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if teamChannels >= s.limits.MaxChannelsPerTeam {
		return nil, model.NewCapacityError("team %s already has %d channels", channel.TeamID, teamChannels)
	}

	if channel.ID == uuid.Nil {
		channel.ID = uuid.New()
	}
	if channel.Settings == (model.ChannelSettings{}) {
		channel.Settings = model.DefaultChannelSettings()
	}

	err = s.gateway.Do(ctx, "create_channel", func(ctx context.Context) error {
		if err := s.repo.CreateChannel(ctx, channel); err != nil {
			return err
		}
		return s.repo.AddChannelMember(ctx, channel.ID, channel.CreatedBy)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate("channels")

	return channel, nil
}

func (s *Service) UpdateChannel(ctx context.Context, id uuid.UUID, patch model.ChannelPatch) (*model.Channel, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, model.NewValidationError("channel name is required")
		}
		if len([]rune(*patch.Name)) > 80 {
			return nil, model.NewValidationError("channel name exceeds maximum length of 80 characters")
		}
	}

	var channel *model.Channel
	err := s.gateway.Do(ctx, "update_channel", func(ctx context.Context) error {
		var err error
		channel, err = s.repo.UpdateChannel(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate("channels")

	return channel, nil
}

func (s *Service) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	err := s.gateway.Do(ctx, "delete_channel", func(ctx context.Context) error {
		return s.repo.DeleteChannel(ctx, id)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate("channels")

	return nil
}

// JoinChannel adds userID to the channel. When the caller adds someone
// other than themselves it counts as an invite and notifies the invitee.
func (s *Service) JoinChannel(ctx context.Context, channelID, userID uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	var channel *model.Channel
	var members int
	err := s.gateway.Do(ctx, "count_channel_members", func(ctx context.Context) error {
		var err error
		channel, err = s.repo.GetChannel(ctx, channelID)
		if err != nil {
			return err
		}
		members, err = s.repo.CountChannelMembers(ctx, channelID)
		return err
	})
	if err != nil {
		return err
	}

	if members >= s.limits.MaxChannelMembers {
		return model.NewCapacityError("channel %s already has %d members", channelID, members)
	}

	err = s.gateway.Do(ctx, "add_channel_member", func(ctx context.Context) error {
		return s.repo.AddChannelMember(ctx, channelID, userID)
	})
	if err != nil {
		return err
	}

	if s.tracker != nil {
		s.tracker.TrackChannelCapacity(channelID, members+1)
	}

	if inviter := s.caller(ctx); s.notifier != nil && inviter != "" && inviter != userID.String() {
		inviterID, err := uuid.Parse(inviter)
		if err == nil {
			if err := s.notifier.NotifyChannelInvite(ctx, channelID, inviterID, userID, channel.Name); err != nil {
				return fmt.Errorf("failed to notify invitee: %w", err)
			}
		}
	}

	return nil
}

func (s *Service) LeaveChannel(ctx context.Context, channelID, userID uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	return s.gateway.Do(ctx, "remove_channel_member", func(ctx context.Context) error {
		return s.repo.RemoveChannelMember(ctx, channelID, userID)
	})
}

// IsChannelMember backs the realtime subscribe-token authorization check.
// It is not rate limited so token refreshes never starve messaging budgets.
func (s *Service) IsChannelMember(ctx context.Context, channelID, userID uuid.UUID) (bool, error) {
	var isMember bool
	err := s.gateway.Do(ctx, "is_channel_member", func(ctx context.Context) error {
		var err error
		isMember, err = s.repo.IsChannelMember(ctx, channelID, userID)
		return err
	})
	return isMember, err
}

// contentLimit is the service-wide cap unless the channel's slow-mode
// settings impose a stricter one.
func (s *Service) contentLimit(channel *model.Channel) int {
	limit := s.limits.MaxMessageLength
	if channel.Settings.MaxMessageLength > 0 && channel.Settings.MaxMessageLength < limit {
		limit = channel.Settings.MaxMessageLength
	}
	return limit
}

func (s *Service) SendMessage(ctx context.Context, message *model.Message) (*model.Message, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	if message.Type == "" {
		message.Type = model.TextMessageType
	}

	var channel *model.Channel
	err := s.gateway.Do(ctx, "get_channel", func(ctx context.Context) error {
		var err error
		channel, err = s.repo.GetChannel(ctx, message.ChannelID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateMessageContent(message.Content, message.Type, s.contentLimit(channel)); err != nil {
		return nil, err
	}
	if len(message.Metadata.Mentions) > 0 && !channel.Settings.AllowMentions {
		return nil, model.NewValidationError("mentions are disabled in this channel")
	}

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	err = s.gateway.Do(ctx, "save_message", func(ctx context.Context) error {
		if err := s.repo.SaveMessage(ctx, message); err != nil {
			return err
		}
		// Sending implicitly stops typing.
		return s.repo.DeleteTypingIndicator(ctx, message.ChannelID, message.SenderID)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate("search")
	s.bumpVolume(message.ChannelID)

	if err := s.bus.MessageChanged(ctx, message.ChannelID, message.ID); err != nil {
		return nil, err
	}
	if err := s.bus.TypingChanged(ctx, message.ChannelID); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		// Mention handles carry user ids. Malformed handles are skipped.
		mentioned := make(map[uuid.UUID]bool, len(message.Metadata.Mentions))
		for _, handle := range message.Metadata.Mentions {
			mentionedID, err := uuid.Parse(handle)
			if err != nil || mentionedID == message.SenderID {
				continue
			}
			mentioned[mentionedID] = true
			if err := s.notifier.NotifyMention(ctx, message, mentionedID); err != nil {
				return nil, fmt.Errorf("failed to notify mention: %w", err)
			}
		}

		var members []uuid.UUID
		err = s.gateway.Do(ctx, "get_channel_members", func(ctx context.Context) error {
			var err error
			members, err = s.repo.GetChannelMembers(ctx, message.ChannelID)
			return err
		})
		if err != nil {
			return nil, err
		}
		for _, memberID := range members {
			if memberID == message.SenderID || mentioned[memberID] {
				continue
			}
			if err := s.notifier.NotifyNewMessage(ctx, message, memberID); err != nil {
				return nil, fmt.Errorf("failed to notify channel member: %w", err)
			}
		}
	}

	return message, nil
}

func (s *Service) GetMessage(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	var message *model.Message
	err := s.gateway.Do(ctx, "get_message", func(ctx context.Context) error {
		var err error
		message, err = s.repo.GetMessage(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if message.IsDeleted {
		return nil, model.NewNotFoundError("message", id.String())
	}

	return message, nil
}

func (s *Service) GetMessages(ctx context.Context, channelID uuid.UUID, limit int, cursor string, direction pagination.Direction) (pagination.MessagePage, error) {
	if err := s.admit(ctx); err != nil {
		return pagination.MessagePage{}, err
	}

	page := pagination.Page{Limit: limit, Direction: direction}
	if cursor != "" {
		decoded, err := pagination.Decode(cursor)
		if err != nil {
			return pagination.MessagePage{}, err
		}
		page.Cursor = decoded
	}

	var messages model.MessageList
	err := s.gateway.Do(ctx, "get_messages", func(ctx context.Context) error {
		var err error
		messages, err = s.repo.GetMessages(ctx, channelID, page)
		return err
	})
	if err != nil {
		return pagination.MessagePage{}, err
	}

	return pagination.NewMessagePage(messages), nil
}

func (s *Service) EditMessage(ctx context.Context, id uuid.UUID, content string) (*model.Message, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	var existing *model.Message
	err := s.gateway.Do(ctx, "get_message", func(ctx context.Context) error {
		var err error
		existing, err = s.repo.GetMessage(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Edits honor the same channel limit as the original send.
	var channel *model.Channel
	err = s.gateway.Do(ctx, "get_channel", func(ctx context.Context) error {
		var err error
		channel, err = s.repo.GetChannel(ctx, existing.ChannelID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateMessageContent(content, existing.Type, s.contentLimit(channel)); err != nil {
		return nil, err
	}

	var message *model.Message
	err = s.gateway.Do(ctx, "edit_message", func(ctx context.Context) error {
		var err error
		message, err = s.repo.EditMessage(ctx, id, content)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate("search")

	if err := s.bus.MessageChanged(ctx, message.ChannelID, message.ID); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *Service) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	var message *model.Message
	err := s.gateway.Do(ctx, "delete_message", func(ctx context.Context) error {
		var err error
		message, err = s.repo.GetMessage(ctx, id)
		if err != nil {
			return err
		}
		return s.repo.SoftDeleteMessage(ctx, id)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate("search")

	return s.bus.MessageChanged(ctx, message.ChannelID, id)
}

// beginSearch registers the caller's in-flight search, cancelling any
// previous one. Search-as-you-type: the superseded request's result is
// discarded, never merged.
func (s *Service) beginSearch(ctx context.Context, callerID string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	current := &inflightSearch{cancel: cancel}

	s.searchMu.Lock()
	if prev, ok := s.searches[callerID]; ok {
		prev.cancel()
	}
	s.searches[callerID] = current
	s.searchMu.Unlock()

	return ctx, func() {
		s.searchMu.Lock()
		if s.searches[callerID] == current {
			delete(s.searches, callerID)
		}
		s.searchMu.Unlock()
		cancel()
	}
}

func searchCacheKey(query string, channelID *uuid.UUID, limit int) string {
	scope := "all"
	if channelID != nil {
		scope = channelID.String()
	}
	return fmt.Sprintf("search:%s:%s:%d", scope, query, pagination.ClampLimit(limit))
}

func (s *Service) SearchMessages(ctx context.Context, query string, channelID *uuid.UUID, limit int) (model.MessageList, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateSearchQuery(query); err != nil {
		return nil, err
	}

	ctx, done := s.beginSearch(ctx, s.caller(ctx))
	defer done()

	key := searchCacheKey(query, channelID, limit)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(model.MessageList), nil
	}

	var messages model.MessageList
	err := s.gateway.Do(ctx, "search_messages", func(ctx context.Context) error {
		var err error
		messages, err = s.repo.SearchMessages(ctx, query, channelID, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, messages, 0)

	return messages, nil
}

func (s *Service) AddReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	if err := s.validator.ValidateReaction(emoji); err != nil {
		return err
	}

	var message *model.Message
	var channel *model.Channel
	err := s.gateway.Do(ctx, "get_message", func(ctx context.Context) error {
		var err error
		message, err = s.repo.GetMessage(ctx, messageID)
		if err != nil {
			return err
		}
		channel, err = s.repo.GetChannel(ctx, message.ChannelID)
		return err
	})
	if err != nil {
		return err
	}

	if !channel.Settings.AllowReactions {
		return model.NewValidationError("reactions are disabled in this channel")
	}

	reaction := &model.Reaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
		CreatedAt: time.Now(),
	}

	err = s.gateway.Do(ctx, "add_reaction", func(ctx context.Context) error {
		return s.repo.AddReaction(ctx, reaction)
	})
	if err != nil {
		return err
	}

	if err := s.bus.ReactionsChanged(ctx, message.ChannelID, messageID); err != nil {
		return err
	}

	if s.notifier != nil && message.SenderID != userID {
		if err := s.notifier.NotifyReaction(ctx, reaction, message, message.SenderID); err != nil {
			return fmt.Errorf("failed to notify reaction: %w", err)
		}
	}

	return nil
}

func (s *Service) RemoveReaction(ctx context.Context, messageID, userID uuid.UUID, emoji string) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	var message *model.Message
	err := s.gateway.Do(ctx, "remove_reaction", func(ctx context.Context) error {
		var err error
		message, err = s.repo.GetMessage(ctx, messageID)
		if err != nil {
			return err
		}
		return s.repo.RemoveReaction(ctx, messageID, userID, emoji)
	})
	if err != nil {
		return err
	}

	return s.bus.ReactionsChanged(ctx, message.ChannelID, messageID)
}

func (s *Service) GetReactions(ctx context.Context, messageID uuid.UUID) ([]model.Reaction, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	var reactions []model.Reaction
	err := s.gateway.Do(ctx, "get_reactions", func(ctx context.Context) error {
		var err error
		reactions, err = s.repo.GetReactions(ctx, messageID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return reactions, nil
}

func (s *Service) MarkMessageAsRead(ctx context.Context, messageID, userID uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	var message *model.Message
	err := s.gateway.Do(ctx, "upsert_read_receipt", func(ctx context.Context) error {
		var err error
		message, err = s.repo.GetMessage(ctx, messageID)
		if err != nil {
			return err
		}
		return s.repo.UpsertReadReceipt(ctx, messageID, userID, time.Now())
	})
	if err != nil {
		return err
	}

	return s.bus.ReadReceiptsChanged(ctx, message.ChannelID, messageID)
}

// MarkAsRead acknowledges every visible message in the channel at once.
func (s *Service) MarkAsRead(ctx context.Context, channelID, userID uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	return s.gateway.Do(ctx, "mark_channel_read", func(ctx context.Context) error {
		return s.repo.MarkChannelRead(ctx, channelID, userID, time.Now())
	})
}

func (s *Service) GetReadReceipts(ctx context.Context, messageID uuid.UUID) ([]model.ReadReceipt, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	var receipts []model.ReadReceipt
	err := s.gateway.Do(ctx, "get_read_receipts", func(ctx context.Context) error {
		var err error
		receipts, err = s.repo.GetReadReceipts(ctx, messageID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return receipts, nil
}

func (s *Service) StartTyping(ctx context.Context, channelID, userID uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	err := s.gateway.Do(ctx, "upsert_typing_indicator", func(ctx context.Context) error {
		return s.repo.UpsertTypingIndicator(ctx, channelID, userID, time.Now())
	})
	if err != nil {
		return err
	}

	return s.bus.TypingChanged(ctx, channelID)
}

func (s *Service) StopTyping(ctx context.Context, channelID, userID uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	err := s.gateway.Do(ctx, "delete_typing_indicator", func(ctx context.Context) error {
		return s.repo.DeleteTypingIndicator(ctx, channelID, userID)
	})
	if err != nil {
		return err
	}

	return s.bus.TypingChanged(ctx, channelID)
}

func (s *Service) GetTypingUsers(ctx context.Context, channelID uuid.UUID) ([]model.TypingIndicator, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	var indicators []model.TypingIndicator
	err := s.gateway.Do(ctx, "get_typing_users", func(ctx context.Context) error {
		var err error
		indicators, err = s.repo.GetTypingUsers(ctx, channelID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return indicators, nil
}

// UploadFile persists a file message plus its attachment row. The blob is
// written by the caller's storage layer; only the reference is stored here.
func (s *Service) UploadFile(ctx context.Context, upload *model.FileUpload, channelID, senderID uuid.UUID) (*model.Attachment, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateFileUpload(upload); err != nil {
		return nil, err
	}

	var channel *model.Channel
	err := s.gateway.Do(ctx, "get_channel", func(ctx context.Context) error {
		var err error
		channel, err = s.repo.GetChannel(ctx, channelID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !channel.Settings.AllowFileUploads {
		return nil, model.NewValidationError("file uploads are disabled in this channel")
	}

	attachment := &model.Attachment{
		ID:          uuid.New(),
		FileName:    upload.FileName,
		ByteSize:    upload.ByteSize,
		MimeType:    upload.MimeType,
		URL:         upload.URL,
		StoragePath: upload.StoragePath,
		CreatedAt:   time.Now(),
	}

	message := &model.Message{
		ID:        uuid.New(),
		ChannelID: channelID,
		SenderID:  senderID,
		Type:      model.FileMessageType,
		Content:   upload.FileName,
		Metadata:  model.MessageMetadata{Attachments: []string{attachment.ID.String()}},
		CreatedAt: time.Now(),
	}
	attachment.MessageID = message.ID

	err = s.gateway.Do(ctx, "upload_file", func(ctx context.Context) error {
		if err := s.repo.SaveMessage(ctx, message); err != nil {
			return err
		}
		return s.repo.SaveAttachment(ctx, attachment)
	})
	if err != nil {
		return nil, err
	}

	s.bumpVolume(channelID)

	if err := s.bus.MessageChanged(ctx, channelID, message.ID); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		var members []uuid.UUID
		err = s.gateway.Do(ctx, "get_channel_members", func(ctx context.Context) error {
			var err error
			members, err = s.repo.GetChannelMembers(ctx, channelID)
			return err
		})
		if err != nil {
			return nil, err
		}
		for _, memberID := range members {
			if memberID == senderID {
				continue
			}
			if err := s.notifier.NotifyFileUpload(ctx, attachment, message, memberID); err != nil {
				return nil, fmt.Errorf("failed to notify channel member: %w", err)
			}
		}
	}

	return attachment, nil
}

func (s *Service) GetFile(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}

	var attachment *model.Attachment
	err := s.gateway.Do(ctx, "get_attachment", func(ctx context.Context) error {
		var err error
		attachment, err = s.repo.GetAttachment(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return attachment, nil
}

func (s *Service) DeleteFile(ctx context.Context, id uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}

	return s.gateway.Do(ctx, "delete_attachment", func(ctx context.Context) error {
		return s.repo.DeleteAttachment(ctx, id)
	})
}

func (s *Service) SubscribeToMessages(channelID uuid.UUID, handler func(model.MessageEvent)) func() {
	return s.bus.SubscribeToMessages(channelID, handler)
}

func (s *Service) SubscribeToTyping(channelID uuid.UUID, handler func(model.TypingEvent)) func() {
	return s.bus.SubscribeToTyping(channelID, handler)
}

func (s *Service) SubscribeToReactions(channelID uuid.UUID, handler func(model.ReactionEvent)) func() {
	return s.bus.SubscribeToReactions(channelID, handler)
}

func (s *Service) SubscribeToReadReceipts(channelID uuid.UUID, handler func(model.ReadReceiptEvent)) func() {
	return s.bus.SubscribeToReadReceipts(channelID, handler)
}

func (s *Service) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) (model.NotificationList, error) {
	if err := s.admit(ctx); err != nil {
		return nil, err
	}
	return s.notifier.GetNotifications(ctx, userID, limit, offset)
}

func (s *Service) GetUnreadCount(ctx context.Context, userID uuid.UUID, channelID *uuid.UUID) (int, error) {
	if err := s.admit(ctx); err != nil {
		return 0, err
	}
	return s.notifier.GetUnreadCount(ctx, userID, channelID)
}

func (s *Service) MarkNotificationAsRead(ctx context.Context, id uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}
	return s.notifier.MarkAsRead(ctx, id)
}

func (s *Service) MarkAllNotificationsAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.admit(ctx); err != nil {
		return err
	}
	return s.notifier.MarkAllAsRead(ctx, userID)
}

func (s *Service) SubscribeToNotifications(userID uuid.UUID, handler func(model.Notification)) func() {
	return s.notifier.Subscribe(userID, handler)
}

func (s *Service) bumpVolume(channelID uuid.UUID) {
	s.volumeMu.Lock()
	s.volume[channelID]++
	count := s.volume[channelID]
	s.volumeMu.Unlock()

	if s.tracker != nil {
		s.tracker.TrackMessageVolume(channelID, count)
	}
}

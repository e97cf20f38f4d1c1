package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

type (
	MessageHandler     func(model.MessageEvent)
	TypingHandler      func(model.TypingEvent)
	ReactionHandler    func(model.ReactionEvent)
	ReadReceiptHandler func(model.ReadReceiptEvent)
)

// remoteEvent is the envelope pushed to the realtime surface.
type remoteEvent struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
}

// Bus keeps a typed listener registry per channel and dispatches refreshed
// entity state on every qualifying store change. Local dispatch happens
// synchronously on the mutating goroutine, so per-channel delivery order
// matches store-commit order. No ordering holds across channels.
type Bus struct {
	reader Reader
	pusher Pusher

	mu           sync.RWMutex
	nextID       uint64
	messageSubs  map[uuid.UUID]map[uint64]MessageHandler
	typingSubs   map[uuid.UUID]map[uint64]TypingHandler
	reactionSubs map[uuid.UUID]map[uint64]ReactionHandler
	receiptSubs  map[uuid.UUID]map[uint64]ReadReceiptHandler
}

func New(reader Reader, pusher Pusher) *Bus {
	return &Bus{
		reader:       reader,
		pusher:       pusher,
		messageSubs:  make(map[uuid.UUID]map[uint64]MessageHandler),
		typingSubs:   make(map[uuid.UUID]map[uint64]TypingHandler),
		reactionSubs: make(map[uuid.UUID]map[uint64]ReactionHandler),
		receiptSubs:  make(map[uuid.UUID]map[uint64]ReadReceiptHandler),
	}
}

// ChannelName is the realtime channel remote clients subscribe to.
func ChannelName(channelID uuid.UUID) string {
	return fmt.Sprintf("channel:%s", channelID)
}

func (b *Bus) SubscribeToMessages(channelID uuid.UUID, handler MessageHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.messageSubs[channelID] == nil {
		b.messageSubs[channelID] = make(map[uint64]MessageHandler)
	}
	b.messageSubs[channelID][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.messageSubs[channelID], id)
	}
}

func (b *Bus) SubscribeToTyping(channelID uuid.UUID, handler TypingHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.typingSubs[channelID] == nil {
		b.typingSubs[channelID] = make(map[uint64]TypingHandler)
	}
	b.typingSubs[channelID][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.typingSubs[channelID], id)
	}
}

func (b *Bus) SubscribeToReactions(channelID uuid.UUID, handler ReactionHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.reactionSubs[channelID] == nil {
		b.reactionSubs[channelID] = make(map[uint64]ReactionHandler)
	}
	b.reactionSubs[channelID][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.reactionSubs[channelID], id)
	}
}

func (b *Bus) SubscribeToReadReceipts(channelID uuid.UUID, handler ReadReceiptHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.receiptSubs[channelID] == nil {
		b.receiptSubs[channelID] = make(map[uint64]ReadReceiptHandler)
	}
	b.receiptSubs[channelID][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.receiptSubs[channelID], id)
	}
}

// MessageChanged re-fetches the message and fans it out to channel
// subscribers and the realtime surface.
func (b *Bus) MessageChanged(ctx context.Context, channelID, messageID uuid.UUID) error {
	message, err := b.reader.GetMessage(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to refresh message: %w", err)
	}

	event := model.MessageEvent{ChannelID: channelID, Message: *message}

	b.mu.RLock()
	handlers := make([]MessageHandler, 0, len(b.messageSubs[channelID]))
	for _, h := range b.messageSubs[channelID] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	return b.push(ctx, channelID, "message", event)
}

func (b *Bus) TypingChanged(ctx context.Context, channelID uuid.UUID) error {
	users, err := b.reader.GetTypingUsers(ctx, channelID)
	if err != nil {
		return fmt.Errorf("failed to refresh typing users: %w", err)
	}

	event := model.TypingEvent{ChannelID: channelID, Users: users}

	b.mu.RLock()
	handlers := make([]TypingHandler, 0, len(b.typingSubs[channelID]))
	for _, h := range b.typingSubs[channelID] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	return b.push(ctx, channelID, "typing", event)
}

func (b *Bus) ReactionsChanged(ctx context.Context, channelID, messageID uuid.UUID) error {
	reactions, err := b.reader.GetReactions(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to refresh reactions: %w", err)
	}

	event := model.ReactionEvent{ChannelID: channelID, MessageID: messageID, Reactions: reactions}

	b.mu.RLock()
	handlers := make([]ReactionHandler, 0, len(b.reactionSubs[channelID]))
	for _, h := range b.reactionSubs[channelID] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	return b.push(ctx, channelID, "reaction", event)
}

func (b *Bus) ReadReceiptsChanged(ctx context.Context, channelID, messageID uuid.UUID) error {
	receipts, err := b.reader.GetReadReceipts(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to refresh read receipts: %w", err)
	}

	event := model.ReadReceiptEvent{ChannelID: channelID, MessageID: messageID, Receipts: receipts}

	b.mu.RLock()
	handlers := make([]ReadReceiptHandler, 0, len(b.receiptSubs[channelID]))
	for _, h := range b.receiptSubs[channelID] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	return b.push(ctx, channelID, "read_receipt", event)
}

func (b *Bus) push(ctx context.Context, channelID uuid.UUID, kind string, data interface{}) error {
	if b.pusher == nil {
		return nil
	}
	return b.pusher.Publish(ctx, ChannelName(channelID), remoteEvent{Kind: kind, Data: data})
}

package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ideaforge/messaging-service/internal/model"
)

type job func(ctx context.Context) error

// Queued decorates a Dispatcher with a bounded in-memory queue so the
// send path never waits on notification fanout. Read and mark operations
// stay synchronous on the embedded dispatcher.
type Queued struct {
	Dispatcher

	mu      sync.Mutex
	jobs    chan job
	closed  bool
	wg      sync.WaitGroup
	onError func(error)
}

// NewQueued starts the drain worker. onError receives failures from
// deferred fanout; it may be nil.
func NewQueued(inner Dispatcher, queueSize int, onError func(error)) *Queued {
	q := &Queued{
		Dispatcher: inner,
		jobs:       make(chan job, queueSize),
		onError:    onError,
	}

	q.wg.Add(1)
	go q.drain()

	return q
}

func (q *Queued) drain() {
	defer q.wg.Done()
	for j := range q.jobs {
		if err := j(context.Background()); err != nil && q.onError != nil {
			q.onError(err)
		}
	}
}

func (q *Queued) enqueue(j job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return model.NewValidationError("notification queue is shut down")
	}

	select {
	case q.jobs <- j:
		return nil
	default:
		return model.NewCapacityError("notification queue is full")
	}
}

// Shutdown stops accepting work and blocks until queued notifications
// are drained.
func (q *Queued) Shutdown() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queued) NotifyNewMessage(_ context.Context, message *model.Message, recipientID uuid.UUID) error {
	return q.enqueue(func(ctx context.Context) error {
		return q.Dispatcher.NotifyNewMessage(ctx, message, recipientID)
	})
}

func (q *Queued) NotifyMention(_ context.Context, message *model.Message, recipientID uuid.UUID) error {
	return q.enqueue(func(ctx context.Context) error {
		return q.Dispatcher.NotifyMention(ctx, message, recipientID)
	})
}

func (q *Queued) NotifyReaction(_ context.Context, reaction *model.Reaction, message *model.Message, recipientID uuid.UUID) error {
	return q.enqueue(func(ctx context.Context) error {
		return q.Dispatcher.NotifyReaction(ctx, reaction, message, recipientID)
	})
}

func (q *Queued) NotifyFileUpload(_ context.Context, attachment *model.Attachment, message *model.Message, recipientID uuid.UUID) error {
	return q.enqueue(func(ctx context.Context) error {
		return q.Dispatcher.NotifyFileUpload(ctx, attachment, message, recipientID)
	})
}

func (q *Queued) NotifyChannelInvite(_ context.Context, channelID, senderID, recipientID uuid.UUID, channelName string) error {
	return q.enqueue(func(ctx context.Context) error {
		return q.Dispatcher.NotifyChannelInvite(ctx, channelID, senderID, recipientID, channelName)
	})
}

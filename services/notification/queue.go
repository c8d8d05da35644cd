package notification

import (
	"context"
	"fmt"

	"realtalk/models"

	"github.com/hibiken/asynq"
)

// QueueDispatcher enqueues notifications on the asynq queue. The worker in
// package cron performs the actual delivery.
type QueueDispatcher struct {
	client *asynq.Client
}

func NewQueueDispatcher(redisOpt asynq.RedisConnOpt) *QueueDispatcher {
	return &QueueDispatcher{client: asynq.NewClient(redisOpt)}
}

func (d *QueueDispatcher) SendEmail(ctx context.Context, msg models.EmailMessage) error {
	task, opts, err := NewEmailTask(msg)
	if err != nil {
		return fmt.Errorf("SendEmail: encode task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("SendEmail: enqueue %s: %w", msg.Kind, err)
	}
	return nil
}

func (d *QueueDispatcher) SendPush(ctx context.Context, msg models.PushMessage) error {
	task, opts, err := NewPushTask(msg)
	if err != nil {
		return fmt.Errorf("SendPush: encode task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("SendPush: enqueue: %w", err)
	}
	return nil
}

func (d *QueueDispatcher) Close() error {
	return d.client.Close()
}

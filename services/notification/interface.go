package notification

import (
	"context"

	"realtalk/models"
)

// Dispatcher hands notifications off for delivery. A nil error means the
// notification has been accepted and will be retried until delivered; it does
// not mean it has been delivered.
type Dispatcher interface {
	SendEmail(ctx context.Context, msg models.EmailMessage) error
	SendPush(ctx context.Context, msg models.PushMessage) error
}

// EmailSender delivers a templated email synchronously.
type EmailSender interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

// Pusher delivers a push notification to the administrator's devices.
type Pusher interface {
	Push(ctx context.Context, msg models.PushMessage) error
}

package notification

import (
	"context"
	"fmt"

	"realtalk/models"

	"firebase.google.com/go/v4/messaging"
)

// FCMPusher sends administrator pushes to an FCM topic that the admin's
// devices subscribe to.
type FCMPusher struct {
	client *messaging.Client
	topic  string
}

func NewFCMPusher(client *messaging.Client, topic string) (*FCMPusher, error) {
	if client == nil || topic == "" {
		return nil, fmt.Errorf("FCM pusher initialization error: client or topic missing")
	}
	return &FCMPusher{client: client, topic: topic}, nil
}

func (p *FCMPusher) Push(ctx context.Context, msg models.PushMessage) error {
	data := map[string]string{"role": "admin"}
	for k, v := range msg.Data {
		data[k] = v
	}

	m := &messaging.Message{
		Topic: p.topic,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := p.client.Send(ctx, m); err != nil {
		return fmt.Errorf("Push: failed to send FCM message: %w", err)
	}
	return nil
}

package notification

import (
	"encoding/json"
	"time"

	"realtalk/models"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailSend = "email:send"
	TypePushAdmin = "push:admin"
)

// NewEmailTask wraps msg in a queue task.
func NewEmailTask(msg models.EmailMessage) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailSend, b)
	opts := []asynq.Option{asynq.MaxRetry(10), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// NewPushTask wraps msg in a queue task.
func NewPushTask(msg models.PushMessage) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePushAdmin, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(15 * time.Second)}

	return task, opts, nil
}

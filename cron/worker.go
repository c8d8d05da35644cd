package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"realtalk/models"
	"realtalk/services/availability"
	"realtalk/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypePurgePastAvailability = "availability:purge-past"

// PurgeSchedule runs the purge shortly after midnight service time.
const PurgeSchedule = "5 0 * * *"

// Worker delivers queued notifications and runs scheduled maintenance.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

// Deps are the services the task handlers call into.
type Deps struct {
	Email        notification.EmailSender
	Push         notification.Pusher // optional
	Availability availability.AvailabilityService
	Location     *time.Location
	Logger       *zap.Logger
}

func NewWorker(redisOpt asynq.RedisConnOpt, deps Deps) *Worker {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: deps.Location})

	return &Worker{
		server:    srv,
		scheduler: scheduler,
		mux:       NewServeMux(deps),
		logger:    logger,
	}
}

// NewServeMux routes every task type to its handler.
func NewServeMux(deps Deps) *asynq.ServeMux {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeEmailSend, handleEmailTask(deps.Email, logger))
	mux.HandleFunc(notification.TypePushAdmin, handlePushTask(deps.Push, logger))
	mux.HandleFunc(TypePurgePastAvailability, handlePurgeTask(deps.Availability, logger))
	return mux
}

// Start runs the worker and scheduler in the background.
func (w *Worker) Start() error {
	if _, err := w.scheduler.Register(PurgeSchedule, asynq.NewTask(TypePurgePastAvailability, nil)); err != nil {
		return fmt.Errorf("failed to register purge schedule: %w", err)
	}

	go func() {
		w.logger.Info("starting task worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := w.server.Run(w.mux); err != nil {
				w.logger.Error("task worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err),
				)
				if attempts == maxAttempts {
					w.logger.Fatal("task worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.logger.Error("task scheduler stopped", zap.Error(err))
		}
	}()
	return nil
}

// Shutdown stops accepting tasks and waits for running ones.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleEmailTask(sender notification.EmailSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg models.EmailMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			logger.Error("invalid email payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := sender.Send(ctx, msg); err != nil {
			logger.Warn("email delivery failed", zap.String("kind", msg.Kind), zap.Error(err))
			return err
		}
		logger.Info("email delivered", zap.String("kind", msg.Kind))
		return nil
	}
}

func handlePushTask(pusher notification.Pusher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if pusher == nil {
			logger.Debug("push not configured, dropping task")
			return nil
		}
		var msg models.PushMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			logger.Error("invalid push payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := pusher.Push(ctx, msg); err != nil {
			logger.Warn("push delivery failed", zap.Error(err))
			return err
		}
		return nil
	}
}

func handlePurgeTask(svc availability.AvailabilityService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := svc.DeletePastDates(ctx)
		if err != nil {
			return err
		}
		logger.Info("purged past availability", zap.Int64("dates", n))
		return nil
	}
}

package availability

import (
	"context"
	"time"

	"realtalk/database/repository"
	"realtalk/models"

	"go.uber.org/zap"
)

// AvailabilityService is the administrator's maintenance of declared slots
// and the session price.
type AvailabilityService interface {
	ListDeclared(ctx context.Context) ([]models.AvailabilityDay, error)
	AddWeekly(ctx context.Context, req models.WeeklySlotsRequest) ([]models.AvailabilityDay, error)
	AddRange(ctx context.Context, req models.SlotRangeRequest) (*models.AvailabilityDay, error)
	DeleteRange(ctx context.Context, req models.SlotRangeRequest) (*models.AvailabilityDay, error)
	DeleteSlot(ctx context.Context, date, slot string) (*models.AvailabilityDay, error)
	DeletePastDates(ctx context.Context) (int64, error)
	SetPrice(ctx context.Context, value float64) error
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Repo     repository.AvailabilityRepository
	Prices   repository.SettingsRepository
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAvailabilityService) loc() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s *DefaultAvailabilityService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

package booking

import (
	"context"
	"time"

	"realtalk/models"
	"realtalk/utils"

	"go.uber.org/zap"
)

// MaxRangeDays bounds AvailableRange.
const MaxRangeDays = 62

// loadState reads the declared availability and every live reservation.
func (s *DefaultBookingService) loadState(ctx context.Context) (models.Availability, []models.Reservation, error) {
	days, err := s.Availability.GetAll(ctx)
	if err != nil {
		s.logger().Error("failed to load availability", zap.Error(err))
		return nil, nil, ErrStoreUnavailable
	}
	reservations, err := s.Reservations.GetAll(ctx)
	if err != nil {
		s.logger().Error("failed to load reservations", zap.Error(err))
		return nil, nil, ErrStoreUnavailable
	}
	return models.AvailabilityFromDays(days), reservations, nil
}

func (s *DefaultBookingService) Price(ctx context.Context) (float64, error) {
	price, err := s.Prices.GetPrice(ctx, s.Settings.DefaultPrice)
	if err != nil {
		s.logger().Error("failed to load price", zap.Error(err))
		return 0, ErrStoreUnavailable
	}
	return price, nil
}

func (s *DefaultBookingService) AvailableOn(ctx context.Context, date string) ([]string, error) {
	if _, err := utils.ParseDate(date, s.loc()); err != nil {
		return nil, withDetail(ErrInvalidDate, "%q is not a YYYY-MM-DD date.", date)
	}
	availability, reservations, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveSlots(date, availability, reservations, s.now(), s.loc()), nil
}

func (s *DefaultBookingService) AvailableRange(ctx context.Context, from string, days int) (map[string][]string, error) {
	if _, err := utils.ParseDate(from, s.loc()); err != nil {
		return nil, withDetail(ErrInvalidDate, "%q is not a YYYY-MM-DD date.", from)
	}
	if days < 1 || days > MaxRangeDays {
		return nil, ErrWindowTooLarge
	}
	availability, reservations, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveRange(from, days, availability, reservations, s.now(), s.loc()), nil
}

func (s *DefaultBookingService) AvailableMonth(ctx context.Context, year, month int) (map[string][]string, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc())
	days := first.AddDate(0, 1, -1).Day()
	return s.AvailableRange(ctx, first.Format(utils.DateLayout), days)
}

// Snapshot is the public view: bookable slots from today onward plus the
// current price.
func (s *DefaultBookingService) Snapshot(ctx context.Context) (*models.PublicSnapshot, error) {
	availability, reservations, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	price, err := s.Price(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &models.PublicSnapshot{
		Available:   ResolveFrom(utils.Today(now, s.loc()), availability, reservations, now, s.loc()),
		Price:       price,
		GeneratedAt: now.UTC(),
	}, nil
}

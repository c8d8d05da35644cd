package availability

import (
	"context"
	"errors"
	"math"
	"time"

	"realtalk/database/repository"
	"realtalk/models"
	"realtalk/services/booking"
	"realtalk/utils"

	"go.uber.org/zap"
)

func (s *DefaultAvailabilityService) ListDeclared(ctx context.Context) ([]models.AvailabilityDay, error) {
	days, err := s.Repo.GetAll(ctx)
	if err != nil {
		s.logger().Error("failed to list availability", zap.Error(err))
		return nil, booking.ErrStoreUnavailable
	}
	return days, nil
}

// AddWeekly merges the slots [Start, End) into every date of the month that
// falls on the weekday. Year defaults to the current year.
func (s *DefaultAvailabilityService) AddWeekly(ctx context.Context, req models.WeeklySlotsRequest) ([]models.AvailabilityDay, error) {
	if req.Month < 1 || req.Month > 12 {
		return nil, booking.ErrInvalidMonth
	}
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, booking.ErrInvalidWeekday
	}
	slots, err := GenerateSlots(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	year := req.Year
	if year == 0 {
		year = s.now().In(s.loc()).Year()
	}

	var updated []models.AvailabilityDay
	for _, date := range DatesOnWeekday(year, time.Month(req.Month), time.Weekday(req.Weekday), s.loc()) {
		day, err := s.update(ctx, date, func(existing []string) []string { return merge(existing, slots) })
		if err != nil {
			return nil, err
		}
		updated = append(updated, *day)
	}

	s.logger().Info("weekly availability added",
		zap.Int("year", year),
		zap.Int("month", req.Month),
		zap.Int("weekday", req.Weekday),
		zap.Int("dates", len(updated)),
	)
	return updated, nil
}

func (s *DefaultAvailabilityService) AddRange(ctx context.Context, req models.SlotRangeRequest) (*models.AvailabilityDay, error) {
	if err := s.checkDate(req.Date); err != nil {
		return nil, err
	}
	slots, err := GenerateSlots(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, req.Date, func(existing []string) []string { return merge(existing, slots) })
}

func (s *DefaultAvailabilityService) DeleteRange(ctx context.Context, req models.SlotRangeRequest) (*models.AvailabilityDay, error) {
	if err := s.checkDate(req.Date); err != nil {
		return nil, err
	}
	slots, err := GenerateSlots(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, req.Date, func(existing []string) []string { return subtract(existing, slots) })
}

// DeleteSlot removes one slot. Removing the last slot removes the date.
func (s *DefaultAvailabilityService) DeleteSlot(ctx context.Context, date, slot string) (*models.AvailabilityDay, error) {
	if err := s.checkDate(date); err != nil {
		return nil, err
	}
	if !utils.IsAlignedSlot(slot) {
		return nil, booking.ErrInvalidSlot
	}
	return s.update(ctx, date, func(existing []string) []string { return subtract(existing, []string{slot}) })
}

// DeletePastDates removes every declared date before today.
func (s *DefaultAvailabilityService) DeletePastDates(ctx context.Context) (int64, error) {
	today := utils.Today(s.now(), s.loc())
	n, err := s.Repo.DeleteBefore(ctx, today)
	if err != nil {
		s.logger().Error("failed to delete past availability", zap.Error(err))
		return 0, booking.ErrStoreUnavailable
	}
	s.logger().Info("past availability deleted", zap.String("before", today), zap.Int64("dates", n))
	return n, nil
}

func (s *DefaultAvailabilityService) SetPrice(ctx context.Context, value float64) error {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return booking.ErrInvalidPrice
	}
	if err := s.Prices.SetPrice(ctx, value); err != nil {
		s.logger().Error("failed to set price", zap.Error(err))
		return booking.ErrStoreUnavailable
	}
	s.logger().Info("price updated", zap.Float64("value", value))
	return nil
}

func (s *DefaultAvailabilityService) checkDate(date string) error {
	if _, err := utils.ParseDate(date, s.loc()); err != nil {
		return booking.ErrInvalidDate
	}
	return nil
}

// update applies fn to the date's slots and stores the result. An empty
// result deletes the date.
func (s *DefaultAvailabilityService) update(ctx context.Context, date string, fn func([]string) []string) (*models.AvailabilityDay, error) {
	var existing []string
	day, err := s.Repo.GetByDate(ctx, date)
	switch {
	case err == nil:
		existing = day.Slots
	case errors.Is(err, repository.ErrAvailabilityNotFound):
	default:
		s.logger().Error("failed to load availability", zap.String("date", date), zap.Error(err))
		return nil, booking.ErrStoreUnavailable
	}

	next := models.AvailabilityDay{Date: date, Slots: fn(existing)}
	if err := s.Repo.Put(ctx, next); err != nil {
		s.logger().Error("failed to save availability", zap.String("date", date), zap.Error(err))
		return nil, booking.ErrStoreUnavailable
	}
	return &next, nil
}

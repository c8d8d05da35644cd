package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"realtalk/database/repository"
	"realtalk/models"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// PaymentDeadline is how long a reservation may stay unpaid before it is
// overdue.
const PaymentDeadline = 24 * time.Hour

// IsOverdue reports whether r is still unpaid PaymentDeadline after it was
// created. It is derived on every read and never stored.
func IsOverdue(r models.Reservation, now time.Time) bool {
	return !r.PaymentConfirmed && !now.Before(r.CreatedAt.Add(PaymentDeadline))
}

// ListReservations returns every reservation newest first with its overdue
// flag computed against now.
func (s *DefaultBookingService) ListReservations(ctx context.Context) ([]models.ReservationView, error) {
	reservations, err := s.Reservations.GetAll(ctx)
	if err != nil {
		s.logger().Error("failed to list reservations", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	sort.SliceStable(reservations, func(i, j int) bool {
		return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
	})

	now := s.now()
	views := make([]models.ReservationView, 0, len(reservations))
	for _, r := range reservations {
		views = append(views, models.ReservationView{Reservation: r, Overdue: IsOverdue(r, now)})
	}
	return views, nil
}

// ConfirmPayment marks a pending reservation paid and queues the requester's
// confirmation email. When only the email fails, the reservation stays
// confirmed and is returned together with ErrNotificationFailed.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, id string) (*models.Reservation, error) {
	r, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.PaymentConfirmed {
		return nil, ErrAlreadyConfirmed
	}

	at := s.now().UTC()
	r.PaymentConfirmed = true
	r.PaymentConfirmedAt = &at
	if err := s.Reservations.Update(ctx, r); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return nil, ErrNotFound
		}
		s.logger().Error("failed to confirm payment", zap.String("reservationId", id), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	if err := s.notifyConfirmation(ctx, *r); err != nil {
		s.logger().Error("payment confirmed but confirmation email was not queued",
			zap.String("reservationId", id),
			zap.Error(err),
		)
		return r, withDetail(ErrNotificationFailed, "Payment confirmed, but the confirmation email could not be sent. Use resend to try again.")
	}

	s.logger().Info("payment confirmed", zap.String("reservationId", id))
	return r, nil
}

// ResendConfirmation re-queues the confirmation email of a paid reservation.
func (s *DefaultBookingService) ResendConfirmation(ctx context.Context, id string) error {
	r, err := s.loadReservation(ctx, id)
	if err != nil {
		return err
	}
	if !r.PaymentConfirmed {
		return ErrNotConfirmed
	}
	if err := s.notifyConfirmation(ctx, *r); err != nil {
		s.logger().Error("failed to resend confirmation", zap.String("reservationId", id), zap.Error(err))
		return ErrNotificationFailed
	}
	return nil
}

// SweepOverdue deletes every currently overdue reservation. Each deletion is
// independent: failures are collected and returned alongside the ids that
// were removed.
func (s *DefaultBookingService) SweepOverdue(ctx context.Context) (*models.SweepResult, error) {
	reservations, err := s.Reservations.GetAll(ctx)
	if err != nil {
		s.logger().Error("failed to load reservations for sweep", zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	now := s.now()
	result := &models.SweepResult{Deleted: []string{}}
	var errs error
	for _, r := range reservations {
		if !IsOverdue(r, now) {
			continue
		}
		if err := s.Reservations.Delete(ctx, r.ID); err != nil {
			result.Failed = append(result.Failed, r.ID)
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", r.ID, err))
			continue
		}
		result.Deleted = append(result.Deleted, r.ID)
	}

	if errs != nil {
		s.logger().Error("overdue sweep finished with failures",
			zap.Int("deleted", len(result.Deleted)),
			zap.Int("failed", len(result.Failed)),
			zap.Error(errs),
		)
	} else {
		s.logger().Info("overdue sweep finished", zap.Int("deleted", len(result.Deleted)))
	}
	return result, errs
}

// AdminRescheduleOptions lists the bookable slots of the
// RescheduleWindowDays days starting at the slot's own date.
func (s *DefaultBookingService) AdminRescheduleOptions(ctx context.Context, id string, from *models.SlotRef) (*models.RescheduleOptions, error) {
	r, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	ref, err := pickFrom(r, from)
	if err != nil {
		return nil, err
	}
	window, err := s.window(ctx, ref.Date)
	if err != nil {
		return nil, err
	}
	return &models.RescheduleOptions{Eligible: true, From: &ref, Window: window}, nil
}

// AdminReschedule moves a slot without the requester's limits. It does not
// consume the requester's reschedule.
func (s *DefaultBookingService) AdminReschedule(ctx context.Context, id string, req models.RescheduleRequest) (*models.Reservation, error) {
	r, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	from, err := pickFrom(r, req.From)
	if err != nil {
		return nil, err
	}
	if err := s.applyMove(ctx, r, from, req.To, from.Date, models.RescheduledByAdmin); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *DefaultBookingService) DeleteReservation(ctx context.Context, id string) error {
	if err := s.Reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return ErrNotFound
		}
		s.logger().Error("failed to delete reservation", zap.String("reservationId", id), zap.Error(err))
		return ErrStoreUnavailable
	}
	s.logger().Info("reservation deleted", zap.String("reservationId", id))
	return nil
}

package booking

import (
	"context"
	"errors"

	"realtalk/database/repository"
	"realtalk/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book validates the request, re-checks every chosen slot against the
// resolver, persists one pending reservation and queues its notifications.
// Nothing is left behind when a step fails.
func (s *DefaultBookingService) Book(ctx context.Context, req models.BookingRequest) (*models.BookingReceipt, error) {
	name, email, err := validateRequester(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	choice := req.Slots
	if len(choice) == 0 && req.SelectionID != "" {
		sel, err := s.getSelection(ctx, req.SelectionID)
		if err != nil {
			return nil, err
		}
		choice = sel.Slots
	}

	entries, total, err := validateSlots(choice, s.loc())
	if err != nil {
		return nil, err
	}

	availability, reservations, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for _, e := range entries {
		open := ResolveSlots(e.Date, availability, reservations, now, s.loc())
		for _, slot := range e.Slots {
			if !containsSlot(open, slot) {
				return nil, withDetail(ErrSlotUnavailable, "%s %s is no longer available. Please choose another time.", e.Date, slot)
			}
		}
	}

	price, err := s.Price(ctx)
	if err != nil {
		return nil, err
	}

	r := models.Reservation{
		ID:            uuid.NewString(),
		SchemaVersion: models.ReservationSchemaVersion,
		Name:          name,
		Email:         email,
		Entries:       entries,
		CreatedAt:     now.UTC(),
		TotalSessions: total,
		TotalPrice:    float64(total) * price,
	}

	if err := s.Reservations.Create(ctx, &r); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		s.logger().Error("failed to persist reservation", zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	link := s.paymentLink(ctx, r, price)

	if err := s.notifyBooking(ctx, r, price, link); err != nil {
		s.logger().Error("failed to queue booking notifications, rolling back",
			zap.String("reservationId", r.ID),
			zap.Error(err),
		)
		if delErr := s.Reservations.Delete(ctx, r.ID); delErr != nil {
			s.logger().Error("failed to roll back reservation",
				zap.String("reservationId", r.ID),
				zap.Error(delErr),
			)
		}
		return nil, ErrNotificationFailed
	}

	if req.SelectionID != "" {
		if err := s.Selections.Delete(ctx, req.SelectionID); err != nil {
			s.logger().Warn("failed to clear selection after booking",
				zap.String("selectionId", req.SelectionID),
				zap.Error(err),
			)
		}
	}

	s.logger().Info("reservation created",
		zap.String("reservationId", r.ID),
		zap.Int("sessions", total),
	)

	return &models.BookingReceipt{
		Reservation:   r,
		TotalSessions: total,
		UnitPrice:     price,
		TotalPrice:    r.TotalPrice,
		PaymentLink:   link,
	}, nil
}

// paymentLink is best effort: a failure only drops the link from the receipt.
func (s *DefaultBookingService) paymentLink(ctx context.Context, r models.Reservation, price float64) string {
	if s.Payments == nil {
		return ""
	}
	link, err := s.Payments.CreateLink(ctx, r, price)
	if err != nil {
		s.logger().Warn("payment link unavailable", zap.String("reservationId", r.ID), zap.Error(err))
		return ""
	}
	return link
}

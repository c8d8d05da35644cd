package booking

import (
	"context"
	"errors"

	"realtalk/models"
	"realtalk/utils"
)

func (s *DefaultBookingService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	return s.loadReservation(ctx, id)
}

// requesterEligible applies the requester's rules in order: payment must be
// confirmed, the single reschedule must be unused, and the slot must start
// more than RescheduleNotice from now.
func (s *DefaultBookingService) requesterEligible(r *models.Reservation, from models.SlotRef) error {
	if !r.PaymentConfirmed {
		return ErrPaymentPending
	}
	if r.RescheduleCount >= 1 {
		return ErrRescheduleLimit
	}
	start, err := utils.SlotStart(from.Date, from.Slot, s.loc())
	if err != nil {
		return withDetail(ErrInvalidSlot, "%s %s is not a valid class time.", from.Date, from.Slot)
	}
	if start.Sub(s.now()) <= RescheduleNotice {
		return ErrTooLate
	}
	return nil
}

// RescheduleOptions reports whether the requester may move from and, if so,
// the bookable slots of the next RescheduleWindowDays days.
func (s *DefaultBookingService) RescheduleOptions(ctx context.Context, id string, from *models.SlotRef) (*models.RescheduleOptions, error) {
	r, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	ref, err := pickFrom(r, from)
	if err != nil {
		return nil, err
	}

	if err := s.requesterEligible(r, ref); err != nil {
		var wfErr *Error
		if errors.As(err, &wfErr) {
			return &models.RescheduleOptions{Eligible: false, Reason: wfErr.Code, From: &ref}, nil
		}
		return nil, err
	}

	window, err := s.window(ctx, today(s.now(), s.loc()))
	if err != nil {
		return nil, err
	}
	return &models.RescheduleOptions{Eligible: true, From: &ref, Window: window}, nil
}

// Reschedule is the requester's one-time move of a confirmed reservation's
// slot to a bookable slot within the next RescheduleWindowDays days. No
// notification is sent.
func (s *DefaultBookingService) Reschedule(ctx context.Context, id string, req models.RescheduleRequest) (*models.Reservation, error) {
	r, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	from, err := pickFrom(r, req.From)
	if err != nil {
		return nil, err
	}
	if err := s.requesterEligible(r, from); err != nil {
		return nil, err
	}

	start := today(s.now(), s.loc())
	if err := s.applyMove(ctx, r, from, req.To, start, models.RescheduledByRequester); err != nil {
		return nil, err
	}
	return r, nil
}

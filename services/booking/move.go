package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"realtalk/database/repository"
	"realtalk/models"
	"realtalk/utils"

	"go.uber.org/zap"
)

// RescheduleWindowDays is the length of both reschedule windows.
const RescheduleWindowDays = 7

// RescheduleNotice is the minimum time before a slot starts for the requester
// to move it.
const RescheduleNotice = time.Hour

func (s *DefaultBookingService) loadReservation(ctx context.Context, id string) (*models.Reservation, error) {
	r, err := s.Reservations.GetByID(ctx, id)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger().Error("failed to load reservation", zap.String("reservationId", id), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return r, nil
}

// pickFrom resolves the slot to move. It may be omitted only when the
// reservation holds exactly one slot.
func pickFrom(r *models.Reservation, from *models.SlotRef) (models.SlotRef, error) {
	if from == nil || (from.Date == "" && from.Slot == "") {
		claims := r.Claims()
		if len(claims) != 1 {
			return models.SlotRef{}, ErrAmbiguousSlot
		}
		return claims[0], nil
	}
	if !r.Holds(*from) {
		return models.SlotRef{}, ErrSlotNotHeld
	}
	return *from, nil
}

// window is the resolver output over RescheduleWindowDays dates from start.
func (s *DefaultBookingService) window(ctx context.Context, start string) (map[string][]string, error) {
	availability, reservations, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveRange(start, RescheduleWindowDays, availability, reservations, s.now(), s.loc()), nil
}

// moveSlot replaces from with to in r's entries and records the move.
func moveSlot(r *models.Reservation, from, to models.SlotRef, now time.Time, by string) {
	var entries []models.SlotEntry
	for _, e := range r.Entries {
		if e.Date == from.Date {
			kept := make([]string, 0, len(e.Slots))
			for _, slot := range e.Slots {
				if slot != from.Slot {
					kept = append(kept, slot)
				}
			}
			e.Slots = kept
		}
		if len(e.Slots) > 0 {
			entries = append(entries, e)
		}
	}

	placed := false
	for i := range entries {
		if entries[i].Date == to.Date {
			entries[i].Slots = append(entries[i].Slots, to.Slot)
			sort.Strings(entries[i].Slots)
			placed = true
		}
	}
	if !placed {
		entries = append(entries, models.SlotEntry{Date: to.Date, Slots: []string{to.Slot}})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	at := now.UTC()
	r.Entries = entries
	r.PreviousDate = from.Date
	r.PreviousSlot = from.Slot
	r.Rescheduled = true
	r.RescheduledAt = &at
	r.RescheduledBy = by
}

// applyMove validates to against the window, updates r and persists the move
// together with its slot claim.
func (s *DefaultBookingService) applyMove(ctx context.Context, r *models.Reservation, from, to models.SlotRef, windowStart, by string) error {
	if err := validateRef(to, s.loc()); err != nil {
		return err
	}
	window, err := s.window(ctx, windowStart)
	if err != nil {
		return err
	}
	if !containsSlot(window[to.Date], to.Slot) {
		return withDetail(ErrSlotUnavailable, "%s %s is not available in the reschedule window.", to.Date, to.Slot)
	}

	moveSlot(r, from, to, s.now(), by)
	if by == models.RescheduledByRequester {
		r.RescheduleCount++
	}

	if err := s.Reservations.MoveSlot(ctx, r, from, to); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return ErrSlotUnavailable
		case errors.Is(err, repository.ErrReservationNotFound):
			return ErrNotFound
		}
		s.logger().Error("failed to persist reschedule", zap.String("reservationId", r.ID), zap.Error(err))
		return ErrStoreUnavailable
	}

	s.logger().Info("reservation rescheduled",
		zap.String("reservationId", r.ID),
		zap.String("by", by),
		zap.String("from", from.Date+" "+from.Slot),
		zap.String("to", to.Date+" "+to.Slot),
	)
	return nil
}

func today(now time.Time, loc *time.Location) string {
	return utils.Today(now, loc)
}

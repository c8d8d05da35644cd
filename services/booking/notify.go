package booking

import (
	"context"
	"fmt"
	"strings"

	"realtalk/models"
	"realtalk/utils"
)

// schedule renders entries as one "date: slot, slot" line per date.
func schedule(entries []models.SlotEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Date, strings.Join(e.Slots, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (s *DefaultBookingService) bookingParams(r models.Reservation, price float64, link string) map[string]any {
	return map[string]any{
		"reservation_id": r.ID,
		"name":           r.Name,
		"email":          r.Email,
		"schedule":       schedule(r.Entries),
		"total_sessions": r.TotalSessions,
		"unit_price":     price,
		"total_price":    r.TotalPrice,
		"payment_link":   link,
	}
}

// notifyBooking queues the administrator email, the requester email and the
// administrator push for a new reservation.
func (s *DefaultBookingService) notifyBooking(ctx context.Context, r models.Reservation, price float64, link string) error {
	admin := s.bookingParams(r, price, link)
	admin["to_email"] = s.Settings.AdminEmail
	admin["recipient"] = "admin"
	if err := s.Notifier.SendEmail(ctx, models.EmailMessage{
		Kind:       models.EmailBookingAdmin,
		TemplateID: s.Settings.BookingTemplate,
		Params:     admin,
	}); err != nil {
		return err
	}

	requester := s.bookingParams(r, price, link)
	requester["to_email"] = r.Email
	requester["recipient"] = "requester"
	if err := s.Notifier.SendEmail(ctx, models.EmailMessage{
		Kind:       models.EmailBookingRequester,
		TemplateID: s.Settings.BookingTemplate,
		Params:     requester,
	}); err != nil {
		return err
	}

	return s.Notifier.SendPush(ctx, models.PushMessage{
		Title: "New class booking",
		Body:  fmt.Sprintf("%s booked %d session%s", r.Name, r.TotalSessions, plural(r.TotalSessions)),
		Data: map[string]string{
			"type":          "new_booking",
			"reservationId": r.ID,
		},
	})
}

// selfServiceLink is the requester's link to view and reschedule.
func (s *DefaultBookingService) selfServiceLink(id string) (string, error) {
	token, err := s.Tokens.GenerateToken(id, utils.ScopeReservation, s.Settings.LinkTTL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/reservations/%s?token=%s", strings.TrimRight(s.Settings.PublicBaseURL, "/"), id, token), nil
}

func (s *DefaultBookingService) notifyConfirmation(ctx context.Context, r models.Reservation) error {
	link, err := s.selfServiceLink(r.ID)
	if err != nil {
		return fmt.Errorf("sign self-service link: %w", err)
	}
	return s.Notifier.SendEmail(ctx, models.EmailMessage{
		Kind:       models.EmailConfirmation,
		TemplateID: s.Settings.ConfirmTemplate,
		Params: map[string]any{
			"to_email":       r.Email,
			"reservation_id": r.ID,
			"name":           r.Name,
			"schedule":       schedule(r.Entries),
			"total_sessions": r.TotalSessions,
			"manage_link":    link,
		},
	})
}

// plural returns "s" if n is not 1, otherwise returns an empty string.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

package booking

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"realtalk/models"
)

func bookingEnv() *testEnv {
	return newTestEnv(at("2024-05-01", "08:00"), map[string][]string{
		"2024-05-02": {"09:00", "09:30", "10:00"},
		"2024-05-03": {"14:00"},
	})
}

func TestBookPersistsAndNotifies(t *testing.T) {
	env := bookingEnv()
	env.prices.SetPrice(context.Background(), 3.5)

	receipt, err := env.svc.Book(context.Background(), models.BookingRequest{
		Name:  "  Mina  ",
		Email: "mina@example.com",
		Slots: map[string][]string{
			"2024-05-03": {"14:00"},
			"2024-05-02": {"10:00", "09:00", "09:00"},
		},
	})
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	r := receipt.Reservation
	if r.Name != "Mina" {
		t.Fatalf("expected trimmed name, got %q", r.Name)
	}
	wantEntries := []models.SlotEntry{
		{Date: "2024-05-02", Slots: []string{"09:00", "10:00"}},
		{Date: "2024-05-03", Slots: []string{"14:00"}},
	}
	if !reflect.DeepEqual(r.Entries, wantEntries) {
		t.Fatalf("unexpected entries %+v", r.Entries)
	}
	if r.PaymentConfirmed || r.RescheduleCount != 0 {
		t.Fatalf("new reservation must be pending with no reschedules: %+v", r)
	}
	if !r.CreatedAt.Equal(env.now) {
		t.Fatalf("expected createdAt %v, got %v", env.now, r.CreatedAt)
	}
	if receipt.TotalSessions != 3 || receipt.UnitPrice != 3.5 || receipt.TotalPrice != 10.5 {
		t.Fatalf("unexpected totals %+v", receipt)
	}
	if receipt.PaymentLink != "https://pay.test/"+r.ID {
		t.Fatalf("unexpected payment link %q", receipt.PaymentLink)
	}

	if env.reservations.count() != 1 {
		t.Fatalf("expected one stored reservation, got %d", env.reservations.count())
	}
	if len(env.notifier.emails) != 2 || len(env.notifier.pushes) != 1 {
		t.Fatalf("expected 2 emails and 1 push, got %d and %d", len(env.notifier.emails), len(env.notifier.pushes))
	}
	admin := env.notifier.emails[0]
	if admin.Kind != models.EmailBookingAdmin || admin.Params["to_email"] != "tutor@example.com" {
		t.Fatalf("unexpected admin email %+v", admin)
	}
	if admin.Params["schedule"] != "2024-05-02: 09:00, 10:00\n2024-05-03: 14:00" {
		t.Fatalf("unexpected schedule %q", admin.Params["schedule"])
	}
	if env.notifier.emails[1].Params["to_email"] != "mina@example.com" {
		t.Fatalf("requester email went to %v", env.notifier.emails[1].Params["to_email"])
	}
}

func TestBookRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		req  models.BookingRequest
		want error
	}{
		{"blank name", models.BookingRequest{Name: "   ", Email: "a@b.co", Slots: map[string][]string{"2024-05-02": {"09:00"}}}, ErrInvalidName},
		{"bad email", models.BookingRequest{Name: "Mina", Email: "mina@example", Slots: map[string][]string{"2024-05-02": {"09:00"}}}, ErrInvalidEmail},
		{"bad date", models.BookingRequest{Name: "Mina", Email: "a@b.co", Slots: map[string][]string{"05/02/2024": {"09:00"}}}, ErrInvalidDate},
		{"misaligned slot", models.BookingRequest{Name: "Mina", Email: "a@b.co", Slots: map[string][]string{"2024-05-02": {"09:15"}}}, ErrInvalidSlot},
		{"nothing chosen", models.BookingRequest{Name: "Mina", Email: "a@b.co", Slots: map[string][]string{"2024-05-02": {}}}, ErrEmptySelection},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := bookingEnv()
			_, err := env.svc.Book(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if env.reservations.count() != 0 || len(env.notifier.emails) != 0 {
				t.Fatal("nothing should be written on validation failure")
			}
		})
	}
}

func TestBookNeverDoubleAllocates(t *testing.T) {
	env := bookingEnv()
	req := models.BookingRequest{Name: "Mina", Email: "mina@example.com", Slots: map[string][]string{"2024-05-02": {"09:30"}}}

	if _, err := env.svc.Book(context.Background(), req); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	req.Name = "Joon"
	_, err := env.svc.Book(context.Background(), req)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
	if env.reservations.count() != 1 {
		t.Fatalf("expected exactly one reservation, got %d", env.reservations.count())
	}

	open, err := env.svc.AvailableOn(context.Background(), "2024-05-02")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(open, []string{"09:00", "10:00"}) {
		t.Fatalf("booked slot still listed: %v", open)
	}
}

func TestBookRejectsUndeclaredSlot(t *testing.T) {
	env := bookingEnv()
	_, err := env.svc.Book(context.Background(), models.BookingRequest{
		Name: "Mina", Email: "mina@example.com",
		Slots: map[string][]string{"2024-05-02": {"11:00"}},
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestBookRollsBackWhenNotificationFails(t *testing.T) {
	env := bookingEnv()
	env.notifier.emailErr = errBoom
	env.notifier.failAfter = 1

	_, err := env.svc.Book(context.Background(), models.BookingRequest{
		Name: "Mina", Email: "mina@example.com",
		Slots: map[string][]string{"2024-05-02": {"09:00"}},
	})
	if !errors.Is(err, ErrNotificationFailed) {
		t.Fatalf("expected notification_failed, got %v", err)
	}
	if env.reservations.count() != 0 {
		t.Fatal("reservation should have been removed")
	}

	open, _ := env.svc.AvailableOn(context.Background(), "2024-05-02")
	if len(open) != 3 {
		t.Fatalf("slot should be free again, got %v", open)
	}
}

func TestBookSurvivesPaymentLinkFailure(t *testing.T) {
	env := bookingEnv()
	env.svc.Payments = fakePayments{err: errBoom}

	receipt, err := env.svc.Book(context.Background(), models.BookingRequest{
		Name: "Mina", Email: "mina@example.com",
		Slots: map[string][]string{"2024-05-02": {"09:00"}},
	})
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if receipt.PaymentLink != "" {
		t.Fatalf("expected no payment link, got %q", receipt.PaymentLink)
	}
}

func TestBookReportsStoreFailure(t *testing.T) {
	env := bookingEnv()
	env.availability.err = errBoom

	_, err := env.svc.Book(context.Background(), models.BookingRequest{
		Name: "Mina", Email: "mina@example.com",
		Slots: map[string][]string{"2024-05-02": {"09:00"}},
	})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected store_unavailable, got %v", err)
	}
}

func TestBookFromSelectionClearsIt(t *testing.T) {
	env := bookingEnv()
	ctx := context.Background()

	sel, err := env.svc.CreateSelection(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.ToggleSlot(ctx, sel.ID, models.ToggleSlotRequest{Date: "2024-05-02", Slot: "10:00"}); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	receipt, err := env.svc.Book(ctx, models.BookingRequest{Name: "Mina", Email: "mina@example.com", SelectionID: sel.ID})
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if receipt.TotalSessions != 1 {
		t.Fatalf("expected one session, got %d", receipt.TotalSessions)
	}
	if _, err := env.svc.GetSelection(ctx, sel.ID); !errors.Is(err, ErrSelectionAbsent) {
		t.Fatalf("selection should be cleared, got %v", err)
	}
}

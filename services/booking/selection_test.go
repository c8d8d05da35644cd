package booking

import (
	"context"
	"errors"
	"testing"

	"realtalk/models"
)

func TestToggleSlotAddsAndRemoves(t *testing.T) {
	env := bookingEnv()
	ctx := context.Background()

	sel, err := env.svc.CreateSelection(ctx)
	if err != nil {
		t.Fatal(err)
	}

	sum, err := env.svc.ToggleSlot(ctx, sel.ID, models.ToggleSlotRequest{Date: "2024-05-02", Slot: "10:00"})
	if err != nil {
		t.Fatal(err)
	}
	sum, err = env.svc.ToggleSlot(ctx, sel.ID, models.ToggleSlotRequest{Date: "2024-05-02", Slot: "09:00"})
	if err != nil {
		t.Fatal(err)
	}
	if got := sum.Slots["2024-05-02"]; len(got) != 2 || got[0] != "09:00" {
		t.Fatalf("expected sorted [09:00 10:00], got %v", got)
	}

	env.svc.ToggleSlot(ctx, sel.ID, models.ToggleSlotRequest{Date: "2024-05-02", Slot: "09:00"})
	sum, err = env.svc.ToggleSlot(ctx, sel.ID, models.ToggleSlotRequest{Date: "2024-05-02", Slot: "10:00"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sum.Slots["2024-05-02"]; ok {
		t.Fatalf("date key should be removed with its last slot: %v", sum.Slots)
	}
	if sum.TotalSessions != 0 || sum.TotalPrice != 0 {
		t.Fatalf("expected empty totals, got %+v", sum)
	}
}

func TestToggleSlotRejectsUnavailable(t *testing.T) {
	env := bookingEnv()
	ctx := context.Background()
	sel, _ := env.svc.CreateSelection(ctx)

	_, err := env.svc.ToggleSlot(ctx, sel.ID, models.ToggleSlotRequest{Date: "2024-05-02", Slot: "16:00"})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func TestToggleSlotUnknownSelection(t *testing.T) {
	env := bookingEnv()
	_, err := env.svc.ToggleSlot(context.Background(), "missing", models.ToggleSlotRequest{Date: "2024-05-02", Slot: "09:00"})
	if !errors.Is(err, ErrSelectionAbsent) {
		t.Fatalf("expected selection_not_found, got %v", err)
	}
}

func TestSelectionTotalFollowsCurrentPrice(t *testing.T) {
	env := bookingEnv()
	ctx := context.Background()
	sel, _ := env.svc.CreateSelection(ctx)
	env.svc.ToggleSlot(ctx, sel.ID, models.ToggleSlotRequest{Date: "2024-05-02", Slot: "09:00"})
	env.svc.ToggleSlot(ctx, sel.ID, models.ToggleSlotRequest{Date: "2024-05-03", Slot: "14:00"})

	sum, err := env.svc.GetSelection(ctx, sel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalPrice != 4 {
		t.Fatalf("expected 2 x default price 2 = 4, got %v", sum.TotalPrice)
	}

	env.prices.SetPrice(ctx, 5)
	sum, err = env.svc.GetSelection(ctx, sel.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sum.UnitPrice != 5 || sum.TotalPrice != 10 {
		t.Fatalf("expected total recomputed at new price, got %+v", sum)
	}
}

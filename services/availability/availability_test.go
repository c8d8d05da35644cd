package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"realtalk/database/repository"
	"realtalk/models"
	"realtalk/services/booking"
)

type memoryRepo struct {
	days map[string][]string
}

func (m *memoryRepo) GetAll(ctx context.Context) ([]models.AvailabilityDay, error) {
	var out []models.AvailabilityDay
	for d, s := range m.days {
		out = append(out, models.AvailabilityDay{Date: d, Slots: s})
	}
	return out, nil
}

func (m *memoryRepo) GetByDate(ctx context.Context, date string) (*models.AvailabilityDay, error) {
	s, ok := m.days[date]
	if !ok {
		return nil, repository.ErrAvailabilityNotFound
	}
	return &models.AvailabilityDay{Date: date, Slots: s}, nil
}

func (m *memoryRepo) Put(ctx context.Context, day models.AvailabilityDay) error {
	if len(day.Slots) == 0 {
		delete(m.days, day.Date)
		return nil
	}
	m.days[day.Date] = day.Slots
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, date string) error {
	delete(m.days, date)
	return nil
}

func (m *memoryRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	var n int64
	for d := range m.days {
		if d < date {
			delete(m.days, d)
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) Watch(ctx context.Context) (<-chan struct{}, error) { return nil, nil }
func (m *memoryRepo) EnsureIndexes() error                               { return nil }

type memoryPrices struct{ value float64 }

func (m *memoryPrices) GetPrice(ctx context.Context, fallback float64) (float64, error) {
	if m.value == 0 {
		return fallback, nil
	}
	return m.value, nil
}
func (m *memoryPrices) SetPrice(ctx context.Context, v float64) error      { m.value = v; return nil }
func (m *memoryPrices) Watch(ctx context.Context) (<-chan struct{}, error) { return nil, nil }

func newService(days map[string][]string) (*DefaultAvailabilityService, *memoryRepo, *memoryPrices) {
	if days == nil {
		days = map[string][]string{}
	}
	repo := &memoryRepo{days: days}
	prices := &memoryPrices{}
	loc := time.FixedZone("KST", 9*60*60)
	return &DefaultAvailabilityService{
		Repo:     repo,
		Prices:   prices,
		Location: loc,
		Now:      func() time.Time { return time.Date(2024, 5, 15, 10, 0, 0, 0, loc) },
	}, repo, prices
}

func TestGenerateSlots(t *testing.T) {
	got, err := GenerateSlots("09:00", "11:00")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"09:00", "09:30", "10:00", "10:30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	for _, bad := range [][2]string{{"10:00", "10:00"}, {"11:00", "09:00"}, {"09:15", "10:00"}, {"9am", "10:00"}} {
		if _, err := GenerateSlots(bad[0], bad[1]); !errors.Is(err, booking.ErrInvalidRange) {
			t.Errorf("GenerateSlots(%q, %q): expected invalid_time_range, got %v", bad[0], bad[1], err)
		}
	}
}

func TestDatesOnWeekday(t *testing.T) {
	got := DatesOnWeekday(2024, time.May, time.Wednesday, time.UTC)
	want := []string{"2024-05-01", "2024-05-08", "2024-05-15", "2024-05-22", "2024-05-29"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAddWeeklyMergesIntoEveryMatchingDate(t *testing.T) {
	svc, repo, _ := newService(map[string][]string{"2024-05-08": {"08:00", "09:30"}})

	days, err := svc.AddWeekly(context.Background(), models.WeeklySlotsRequest{Month: 5, Weekday: 3, Start: "09:00", End: "10:00"})
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 5 {
		t.Fatalf("expected five Wednesdays, got %d", len(days))
	}
	if got := repo.days["2024-05-08"]; !reflect.DeepEqual(got, []string{"08:00", "09:00", "09:30"}) {
		t.Fatalf("existing slots should be merged, got %v", got)
	}
	if got := repo.days["2024-05-29"]; !reflect.DeepEqual(got, []string{"09:00", "09:30"}) {
		t.Fatalf("unexpected slots %v", got)
	}
}

func TestDeleteLastSlotRemovesDate(t *testing.T) {
	svc, repo, _ := newService(map[string][]string{"2024-05-20": {"09:00"}})
	ctx := context.Background()

	day, err := svc.DeleteSlot(ctx, "2024-05-20", "09:00")
	if err != nil {
		t.Fatal(err)
	}
	if len(day.Slots) != 0 {
		t.Fatalf("expected no slots, got %v", day.Slots)
	}
	if _, ok := repo.days["2024-05-20"]; ok {
		t.Fatal("date should be deleted, not stored empty")
	}

	if _, err := repo.GetByDate(ctx, "2024-05-20"); !errors.Is(err, repository.ErrAvailabilityNotFound) {
		t.Fatalf("expected date to be gone, got %v", err)
	}
}

func TestDeleteRange(t *testing.T) {
	svc, repo, _ := newService(map[string][]string{"2024-05-20": {"09:00", "09:30", "10:00", "10:30"}})

	if _, err := svc.DeleteRange(context.Background(), models.SlotRangeRequest{Date: "2024-05-20", Start: "09:30", End: "10:30"}); err != nil {
		t.Fatal(err)
	}
	if got := repo.days["2024-05-20"]; !reflect.DeepEqual(got, []string{"09:00", "10:30"}) {
		t.Fatalf("unexpected slots %v", got)
	}
}

func TestDeletePastDates(t *testing.T) {
	svc, repo, _ := newService(map[string][]string{
		"2024-05-14": {"09:00"},
		"2024-05-15": {"09:00"},
		"2024-06-01": {"09:00"},
	})

	n, err := svc.DeletePastDates(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || len(repo.days) != 2 {
		t.Fatalf("expected only 2024-05-14 removed, got n=%d days=%v", n, repo.days)
	}
}

func TestSetPriceRejectsNonPositive(t *testing.T) {
	svc, _, prices := newService(nil)

	if err := svc.SetPrice(context.Background(), 0); !errors.Is(err, booking.ErrInvalidPrice) {
		t.Fatalf("expected invalid_price, got %v", err)
	}
	if err := svc.SetPrice(context.Background(), 4.5); err != nil {
		t.Fatal(err)
	}
	if prices.value != 4.5 {
		t.Fatalf("expected 4.5, got %v", prices.value)
	}
}

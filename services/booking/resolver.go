package booking

import (
	"sort"
	"time"

	"realtalk/models"
	"realtalk/utils"
)

// LeadTime is the minimum notice for booking a slot on the current day.
const LeadTime = 60 * time.Minute

// ResolveSlots returns the slots on date that can still be booked: the
// declared slots, minus every slot claimed by a reservation, minus (for today
// only) slots starting less than LeadTime after now. The result is ascending.
// A date with nothing declared yields an empty slice. Past dates are not
// rejected here.
func ResolveSlots(date string, availability models.Availability, reservations []models.Reservation, now time.Time, loc *time.Location) []string {
	declared := availability[date]
	if len(declared) == 0 {
		return []string{}
	}

	taken := make(map[string]bool)
	for _, r := range reservations {
		for _, e := range r.Entries {
			if e.Date != date {
				continue
			}
			for _, s := range e.Slots {
				taken[s] = true
			}
		}
	}

	isToday := date == utils.Today(now, loc)

	out := make([]string, 0, len(declared))
	for _, slot := range declared {
		if taken[slot] {
			continue
		}
		if isToday {
			start, err := utils.SlotStart(date, slot, loc)
			if err != nil || start.Sub(now) < LeadTime {
				continue
			}
		}
		out = append(out, slot)
	}
	sort.Strings(out)
	return out
}

// ResolveRange runs ResolveSlots over days consecutive dates starting at from.
// Dates with nothing bookable are omitted.
func ResolveRange(from string, days int, availability models.Availability, reservations []models.Reservation, now time.Time, loc *time.Location) map[string][]string {
	out := make(map[string][]string)
	for i := 0; i < days; i++ {
		date, err := utils.AddDays(from, i)
		if err != nil {
			return out
		}
		if slots := ResolveSlots(date, availability, reservations, now, loc); len(slots) > 0 {
			out[date] = slots
		}
	}
	return out
}

// ResolveFrom runs ResolveSlots over every declared date on or after from.
func ResolveFrom(from string, availability models.Availability, reservations []models.Reservation, now time.Time, loc *time.Location) map[string][]string {
	out := make(map[string][]string)
	for date := range availability {
		if date < from {
			continue
		}
		if slots := ResolveSlots(date, availability, reservations, now, loc); len(slots) > 0 {
			out[date] = slots
		}
	}
	return out
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

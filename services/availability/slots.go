package availability

import (
	"sort"
	"time"

	"realtalk/services/booking"
	"realtalk/utils"
)

// GenerateSlots returns the half-hour slots in [start, end).
func GenerateSlots(start, end string) ([]string, error) {
	if !utils.IsAlignedSlot(start) || !utils.IsAlignedSlot(end) {
		return nil, booking.ErrInvalidRange
	}
	from, _ := utils.ParseSlot(start)
	to, _ := utils.ParseSlot(end)
	if from >= to {
		return nil, booking.ErrInvalidRange
	}

	step := int(utils.SlotStep / time.Minute)
	var slots []string
	for m := from; m < to; m += step {
		slots = append(slots, utils.FormatSlot(m))
	}
	return slots, nil
}

// DatesOnWeekday lists every date of month falling on weekday.
func DatesOnWeekday(year int, month time.Month, weekday time.Weekday, loc *time.Location) []string {
	var dates []string
	for d := time.Date(year, month, 1, 0, 0, 0, 0, loc); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == weekday {
			dates = append(dates, d.Format(utils.DateLayout))
		}
	}
	return dates
}

func merge(existing, add []string) []string {
	set := make(map[string]bool, len(existing)+len(add))
	for _, s := range existing {
		set[s] = true
	}
	for _, s := range add {
		set[s] = true
	}
	return sortedKeys(set)
}

func subtract(existing, remove []string) []string {
	set := make(map[string]bool, len(existing))
	for _, s := range existing {
		set[s] = true
	}
	for _, s := range remove {
		delete(set, s)
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

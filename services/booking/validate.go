package booking

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"realtalk/models"
	"realtalk/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateRequester returns the trimmed name and email.
func validateRequester(name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", ErrInvalidName
	}
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return "", "", ErrInvalidEmail
	}
	return name, email, nil
}

// validateSlots checks a date -> slots choice and returns it as sorted,
// de-duplicated entries.
func validateSlots(choice map[string][]string, loc *time.Location) ([]models.SlotEntry, int, error) {
	dates := make([]string, 0, len(choice))
	for date := range choice {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var entries []models.SlotEntry
	total := 0
	for _, date := range dates {
		if _, err := utils.ParseDate(date, loc); err != nil {
			return nil, 0, withDetail(ErrInvalidDate, "%q is not a YYYY-MM-DD date.", date)
		}
		seen := make(map[string]bool)
		var slots []string
		for _, slot := range choice[date] {
			if !utils.IsAlignedSlot(slot) {
				return nil, 0, withDetail(ErrInvalidSlot, "%q is not a valid half-hour time.", slot)
			}
			if seen[slot] {
				continue
			}
			seen[slot] = true
			slots = append(slots, slot)
		}
		if len(slots) == 0 {
			continue
		}
		sort.Strings(slots)
		entries = append(entries, models.SlotEntry{Date: date, Slots: slots})
		total += len(slots)
	}
	if total == 0 {
		return nil, 0, ErrEmptySelection
	}
	return entries, total, nil
}

func validateRef(ref models.SlotRef, loc *time.Location) error {
	if _, err := utils.ParseDate(ref.Date, loc); err != nil {
		return withDetail(ErrInvalidDate, "%q is not a YYYY-MM-DD date.", ref.Date)
	}
	if !utils.IsAlignedSlot(ref.Slot) {
		return withDetail(ErrInvalidSlot, "%q is not a valid half-hour time.", ref.Slot)
	}
	return nil
}

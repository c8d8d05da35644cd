package utils

import (
	"fmt"
	"time"
)

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// ParseSlot returns the minutes from midnight of an HH:MM slot.
func ParseSlot(slot string) (int, error) {
	t, err := time.Parse(SlotLayout, slot)
	if err != nil || len(slot) != len(SlotLayout) {
		return 0, fmt.Errorf("invalid slot %q", slot)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatSlot renders minutes from midnight as HH:MM.
func FormatSlot(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsAlignedSlot reports whether slot is a valid HH:MM on the slot grid.
func IsAlignedSlot(slot string) bool {
	m, err := ParseSlot(slot)
	if err != nil {
		return false
	}
	return m%int(SlotStep/time.Minute) == 0
}

// SlotStart is the absolute start time of slot on date in loc.
func SlotStart(date, slot string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseSlot(slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, loc), nil
}

// Today returns the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d.AddDate(0, 0, n).Format(DateLayout), nil
}

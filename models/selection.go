package models

import "time"

// Selection is a requester's in-progress choice of slots, keyed by date.
// It never carries a price; totals are computed when it is read.
type Selection struct {
	ID        string              `json:"id"`
	Slots     map[string][]string `json:"slots"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// TotalSessions counts the selected slots across all dates.
func (s Selection) TotalSessions() int {
	n := 0
	for _, slots := range s.Slots {
		n += len(slots)
	}
	return n
}

// SelectionSummary is a selection priced at the current PriceSetting.
type SelectionSummary struct {
	Selection
	TotalSessions int     `json:"totalSessions"`
	UnitPrice     float64 `json:"unitPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// ToggleSlotRequest adds or removes one slot from a selection.
type ToggleSlotRequest struct {
	Date string `json:"date" binding:"required"`
	Slot string `json:"slot" binding:"required"`
}

package models

// AvailabilityDay is the set of bookable time-of-day slots declared for one
// calendar date. Slots are unique "HH:MM" strings in ascending order.
type AvailabilityDay struct {
	Date  string   `bson:"date" json:"date"`
	Slots []string `bson:"slots" json:"slots"`
}

// Availability maps a "YYYY-MM-DD" date to its declared slots.
type Availability map[string][]string

// AvailabilityFromDays indexes days by date.
func AvailabilityFromDays(days []AvailabilityDay) Availability {
	out := make(Availability, len(days))
	for _, d := range days {
		out[d.Date] = d.Slots
	}
	return out
}

// WeeklySlotsRequest adds [Start, End) to every date of Month falling on Weekday.
type WeeklySlotsRequest struct {
	Year    int    `json:"year"`
	Month   int    `json:"month" binding:"required,min=1,max=12"`
	Weekday int    `json:"weekday" binding:"min=0,max=6"` // 0 = Sunday
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
}

// SlotRangeRequest addresses the slots [Start, End) on Date.
type SlotRangeRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

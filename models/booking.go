package models

import "time"

// BookingRequest is a requester's submission. Either Slots or SelectionID
// must be provided.
type BookingRequest struct {
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Slots       map[string][]string `json:"slots,omitempty"`
	SelectionID string              `json:"selectionId,omitempty"`
}

// BookingReceipt is returned once a reservation has been persisted and its
// notifications queued.
type BookingReceipt struct {
	Reservation   Reservation `json:"reservation"`
	TotalSessions int         `json:"totalSessions"`
	UnitPrice     float64     `json:"unitPrice"`
	TotalPrice    float64     `json:"totalPrice"`
	PaymentLink   string      `json:"paymentLink,omitempty"`
}

// RescheduleRequest moves From to To. From may be empty when the reservation
// holds exactly one slot.
type RescheduleRequest struct {
	From *SlotRef `json:"from,omitempty"`
	To   SlotRef  `json:"to" binding:"required"`
}

// RescheduleOptions describes whether a reschedule is allowed and, if so,
// which slots can be chosen.
type RescheduleOptions struct {
	Eligible bool                `json:"eligible"`
	Reason   string              `json:"reason,omitempty"`
	From     *SlotRef            `json:"from,omitempty"`
	Window   map[string][]string `json:"window,omitempty"`
}

// SweepResult reports an overdue sweep.
type SweepResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed,omitempty"`
}

// PublicSnapshot is what the live feed publishes to requesters.
type PublicSnapshot struct {
	Available   map[string][]string `json:"available"`
	Price       float64             `json:"price"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

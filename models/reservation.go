package models

import "time"

// ReservationSchemaVersion is the version written for every new or rewritten
// reservation. Version 1 is the legacy single date/slots shape.
const ReservationSchemaVersion = 2

const (
	RescheduledByRequester = "requester"
	RescheduledByAdmin     = "admin"
)

// SlotEntry is one date of a reservation with the slots claimed on it.
type SlotEntry struct {
	Date  string   `bson:"date" json:"date"`
	Slots []string `bson:"slots" json:"slots"`
}

// SlotRef addresses a single slot on a single date.
type SlotRef struct {
	Date string `bson:"date" json:"date"`
	Slot string `bson:"slot" json:"slot"`
}

// Reservation is a requester's claim on one or more slots.
type Reservation struct {
	ID                 string      `bson:"id" json:"id"`
	SchemaVersion      int         `bson:"schemaVersion" json:"-"`
	Name               string      `bson:"name" json:"name"`
	Email              string      `bson:"email" json:"email"`
	Entries            []SlotEntry `bson:"entries" json:"entries"`
	CreatedAt          time.Time   `bson:"createdAt" json:"createdAt"`
	PaymentConfirmed   bool        `bson:"paymentConfirmed" json:"paymentConfirmed"`
	PaymentConfirmedAt *time.Time  `bson:"paymentConfirmedAt,omitempty" json:"paymentConfirmedAt,omitempty"`
	RescheduleCount    int         `bson:"rescheduleCount" json:"rescheduleCount"`
	PreviousDate       string      `bson:"previousDate,omitempty" json:"previousDate,omitempty"`
	PreviousSlot       string      `bson:"previousSlot,omitempty" json:"previousSlot,omitempty"`
	Rescheduled        bool        `bson:"rescheduled" json:"rescheduled"`
	RescheduledAt      *time.Time  `bson:"rescheduledAt,omitempty" json:"rescheduledAt,omitempty"`
	RescheduledBy      string      `bson:"rescheduledBy,omitempty" json:"rescheduledBy,omitempty"`
	TotalSessions      int         `bson:"totalSessions" json:"totalSessions"`
	TotalPrice         float64     `bson:"totalPrice" json:"totalPrice"`
}

// Claims lists every (date, slot) the reservation holds.
func (r Reservation) Claims() []SlotRef {
	var refs []SlotRef
	for _, e := range r.Entries {
		for _, s := range e.Slots {
			refs = append(refs, SlotRef{Date: e.Date, Slot: s})
		}
	}
	return refs
}

// Holds reports whether the reservation claims ref.
func (r Reservation) Holds(ref SlotRef) bool {
	for _, c := range r.Claims() {
		if c == ref {
			return true
		}
	}
	return false
}

// ReservationView is the administrator's view with derived fields.
type ReservationView struct {
	Reservation
	Overdue bool `json:"overdue"`
}

// File: database/repository/reservation/normalize.go
package reservationRepo

import (
	"sort"
	"time"

	"realtalk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// storedReservation is a bookings document as it may exist on disk. Early
// documents carry a single top-level date/slots pair, a string bookedAt and
// no id field; they are read through the legacy fields below.
type storedReservation struct {
	MongoID            interface{} `bson:"_id,omitempty"`
	models.Reservation `bson:",inline"`

	LegacyDate  string   `bson:"date,omitempty"`
	LegacySlots []string `bson:"slots,omitempty"`
	LegacySlot  string   `bson:"slot,omitempty"`
	BookedAt    string   `bson:"bookedAt,omitempty"`
}

// normalize converts any stored shape into the canonical reservation.
func normalize(doc storedReservation) models.Reservation {
	r := doc.Reservation

	if r.ID == "" {
		switch v := doc.MongoID.(type) {
		case string:
			r.ID = v
		case primitive.ObjectID:
			r.ID = v.Hex()
		}
	}

	if len(r.Entries) == 0 && doc.LegacyDate != "" {
		slots := append([]string(nil), doc.LegacySlots...)
		if len(slots) == 0 && doc.LegacySlot != "" {
			slots = []string{doc.LegacySlot}
		}
		sort.Strings(slots)
		r.Entries = []models.SlotEntry{{Date: doc.LegacyDate, Slots: slots}}
	}

	if r.CreatedAt.IsZero() && doc.BookedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, doc.BookedAt); err == nil {
			r.CreatedAt = t
		}
	}

	if r.TotalSessions == 0 {
		r.TotalSessions = len(r.Claims())
	}
	r.SchemaVersion = models.ReservationSchemaVersion
	return r
}

// idFilter matches a reservation by its id field, or by _id for legacy
// documents that predate the id field.
func idFilter(id string) bson.M {
	alternatives := bson.A{
		bson.M{"id": id},
		bson.M{"_id": id},
	}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		alternatives = append(alternatives, bson.M{"_id": oid})
	}
	return bson.M{"$or": alternatives}
}

// canonicalDocument is what every write stores. Legacy fields are dropped by
// the replace, which migrates the document in place.
func canonicalDocument(r *models.Reservation) models.Reservation {
	out := *r
	out.SchemaVersion = models.ReservationSchemaVersion
	return out
}

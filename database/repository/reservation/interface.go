// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"errors"

	"realtalk/database"
	"realtalk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("reservation not found")
	ErrSlotTaken = errors.New("slot already reserved")
)

// ReservationRepository is the data-access boundary for reservations. Every
// reservation it returns is in the canonical entries shape.
type ReservationRepository interface {
	GetAll(ctx context.Context) ([]models.Reservation, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	// Create persists the reservation together with a claim for every slot it
	// holds. A slot already claimed by another reservation fails with ErrSlotTaken
	// and nothing is written.
	Create(ctx context.Context, r *models.Reservation) error
	// Update overwrites the reservation without touching its claims.
	Update(ctx context.Context, r *models.Reservation) error
	// MoveSlot overwrites the reservation and moves the claim from -> to.
	MoveSlot(ctx context.Context, r *models.Reservation, from, to models.SlotRef) error
	Delete(ctx context.Context, id string) error
	BackfillClaims(ctx context.Context) (int, error)
	Watch(ctx context.Context) (<-chan struct{}, error)
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll      *mongo.Collection
	claimColl *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.Database()
	return &mongoReservationRepo{
		coll:      db.Collection("bookings"),
		claimColl: db.Collection("slotClaims"),
	}
}

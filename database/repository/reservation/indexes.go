// FILE: database/repository/reservation/indexes.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings and slotClaims collections.
func (r *mongoReservationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Legacy documents have no id field, so the unique index must be sparse.
	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "paymentConfirmed", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("payment_created_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}

	claimIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reservationId", Value: 1}},
			Options: options.Index().SetName("reservation_idx"),
		},
	}
	if _, err := r.claimColl.Indexes().CreateMany(ctx, claimIndexes); err != nil {
		return fmt.Errorf("failed to create slot claim indexes: %w", err)
	}
	return nil
}

// File: database/repository/reservation/crud.go
package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realtalk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoReservationRepo) GetAll(ctx context.Context) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []models.Reservation{}
	for cursor.Next(ctx) {
		var doc storedReservation
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding reservation: %w", err)
		}
		reservations = append(reservations, normalize(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return reservations, nil
}

func (r *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc storedReservation
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reservation %s: %w", id, err)
	}
	res := normalize(doc)
	return &res, nil
}

func (r *mongoReservationRepo) Update(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, idFilter(res.ID), canonicalDocument(res))
	if err != nil {
		return fmt.Errorf("error updating reservation %s: %w", res.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// BackfillClaims writes a claim for every slot of every stored reservation.
// Claims that already belong to the same reservation are skipped; a slot held
// by two reservations is reported as a conflict and left with its first owner.
func (r *mongoReservationRepo) BackfillClaims(ctx context.Context) (int, error) {
	reservations, err := r.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	conflicts := 0
	for _, res := range reservations {
		for _, ref := range res.Claims() {
			claim := newClaim(res.ID, ref)
			_, err := r.claimColl.UpdateOne(ctx,
				bson.M{"_id": claim.Key},
				bson.M{"$setOnInsert": claim},
				options.Update().SetUpsert(true),
			)
			if err != nil {
				return conflicts, fmt.Errorf("failed to backfill claim %s: %w", claim.Key, err)
			}

			var owner slotClaim
			if err := r.claimColl.FindOne(ctx, bson.M{"_id": claim.Key}).Decode(&owner); err == nil && owner.ReservationID != res.ID {
				conflicts++
			}
		}
	}
	return conflicts, nil
}

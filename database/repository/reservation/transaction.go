// File: database/repository/reservation/transaction.go
package reservationRepo

import (
	"context"
	"fmt"

	"realtalk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// slotClaim marks one (date, slot) as taken. The _id makes a second claim on
// the same slot a duplicate-key error.
type slotClaim struct {
	Key           string `bson:"_id"`
	ReservationID string `bson:"reservationId"`
	Date          string `bson:"date"`
	Slot          string `bson:"slot"`
}

func claimKey(ref models.SlotRef) string {
	return ref.Date + "|" + ref.Slot
}

func newClaim(reservationID string, ref models.SlotRef) slotClaim {
	return slotClaim{
		Key:           claimKey(ref),
		ReservationID: reservationID,
		Date:          ref.Date,
		Slot:          ref.Slot,
	}
}

// withTransaction runs fn inside a mongo transaction. Transient errors are
// retried by the driver.
func (r *mongoReservationRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func (r *mongoReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	claims := res.Claims()
	docs := make([]interface{}, len(claims))
	for i, ref := range claims {
		docs[i] = newClaim(res.ID, ref)
	}

	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if len(docs) > 0 {
			if _, err := r.claimColl.InsertMany(sc, docs); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					return ErrSlotTaken
				}
				return fmt.Errorf("insert slot claims failed: %w", err)
			}
		}
		if _, err := r.coll.InsertOne(sc, canonicalDocument(res)); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reservation transaction failed: %w", err)
	}
	return nil
}

func (r *mongoReservationRepo) MoveSlot(ctx context.Context, res *models.Reservation, from, to models.SlotRef) error {
	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.claimColl.DeleteOne(sc, bson.M{"_id": claimKey(from), "reservationId": res.ID}); err != nil {
			return fmt.Errorf("release slot claim failed: %w", err)
		}
		if _, err := r.claimColl.InsertOne(sc, newClaim(res.ID, to)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert slot claim failed: %w", err)
		}
		result, err := r.coll.ReplaceOne(sc, idFilter(res.ID), canonicalDocument(res))
		if err != nil {
			return fmt.Errorf("replace reservation failed: %w", err)
		}
		if result.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return nil
}

func (r *mongoReservationRepo) Delete(ctx context.Context, id string) error {
	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		result, err := r.coll.DeleteOne(sc, idFilter(id))
		if err != nil {
			return fmt.Errorf("delete reservation failed: %w", err)
		}
		if result.DeletedCount == 0 {
			return ErrNotFound
		}
		if _, err := r.claimColl.DeleteMany(sc, bson.M{"reservationId": id}); err != nil {
			return fmt.Errorf("release slot claims failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete transaction failed: %w", err)
	}
	return nil
}

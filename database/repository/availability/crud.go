// File: database/repository/availability/crud.go
package availabilityRepo

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

func (r *mongoAvailabilityRepo) GetAll(ctx context.Context) ([]models.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	defer cursor.Close(ctx)

	days := []models.AvailabilityDay{}
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("error decoding availability: %w", err)
	}
	return days, nil
}

func (r *mongoAvailabilityRepo) GetByDate(ctx context.Context, date string) (*models.AvailabilityDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var day models.AvailabilityDay
	err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch availability for %s: %w", date, err)
	}
	return &day, nil
}

func (r *mongoAvailabilityRepo) Put(ctx context.Context, day models.AvailabilityDay) error {
	if len(day.Slots) == 0 {
		err := r.Delete(ctx, day.Date)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"date": day.Date}, day, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save availability for %s: %w", day.Date, err)
	}
	return nil
}

func (r *mongoAvailabilityRepo) Delete(ctx context.Context, date string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"date": date})
	if err != nil {
		return fmt.Errorf("failed to delete availability for %s: %w", date, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBefore removes every date strictly before date. ISO dates order
// lexically, so a string comparison is enough.
func (r *mongoAvailabilityRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": date}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete availability before %s: %w", date, err)
	}
	return res.DeletedCount, nil
}

// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"errors"

	"realtalk/database"
	"realtalk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("availability day not found")

// AvailabilityRepository stores the administrator's declared slots by date.
type AvailabilityRepository interface {
	GetAll(ctx context.Context) ([]models.AvailabilityDay, error)
	GetByDate(ctx context.Context, date string) (*models.AvailabilityDay, error)
	// Put overwrites the day. An empty slot set deletes the date instead.
	Put(ctx context.Context, day models.AvailabilityDay) error
	Delete(ctx context.Context, date string) error
	DeleteBefore(ctx context.Context, date string) (int64, error)
	Watch(ctx context.Context) (<-chan struct{}, error)
	EnsureIndexes() error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: database.Database().Collection("timeSlots"),
	}
}

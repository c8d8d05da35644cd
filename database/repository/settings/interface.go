// File: database/repository/settings/interface.go
package settingsRepo

import (
	"context"

	"realtalk/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// SettingsRepository holds site-wide settings. Only the per-session price is
// stored today.
type SettingsRepository interface {
	// GetPrice returns the stored price, or fallback when none has been set.
	GetPrice(ctx context.Context, fallback float64) (float64, error)
	SetPrice(ctx context.Context, value float64) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo constructs a new MongoDB SettingsRepository.
func NewMongoSettingsRepo() SettingsRepository {
	return &mongoSettingsRepo{
		coll: database.Database().Collection("settings"),
	}
}

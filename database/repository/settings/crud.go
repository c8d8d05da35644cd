// File: database/repository/settings/crud.go
package settingsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"realtalk/database"
	"realtalk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSettingsRepo) GetPrice(ctx context.Context, fallback float64) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var setting models.PriceSetting
	err := r.coll.FindOne(ctx, bson.M{"_id": models.PriceSettingID}).Decode(&setting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fallback, nil
		}
		return 0, fmt.Errorf("failed to fetch price: %w", err)
	}
	return setting.Value, nil
}

func (r *mongoSettingsRepo) SetPrice(ctx context.Context, value float64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	setting := models.PriceSetting{ID: models.PriceSettingID, Value: value}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": setting.ID}, setting, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save price: %w", err)
	}
	return nil
}

// Watch signals on every change to the settings collection.
func (r *mongoSettingsRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return database.WatchCollection(ctx, r.coll)
}

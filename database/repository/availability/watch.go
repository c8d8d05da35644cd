// File: database/repository/availability/watch.go
package availabilityRepo

import (
	"context"

	"realtalk/database"
)

// Watch signals on every change to the timeSlots collection.
func (r *mongoAvailabilityRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return database.WatchCollection(ctx, r.coll)
}

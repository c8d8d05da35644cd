// File: database/repository/reservation/watch.go
package reservationRepo

import (
	"context"

	"realtalk/database"
)

// Watch signals on every change to the bookings collection.
func (r *mongoReservationRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return database.WatchCollection(ctx, r.coll)
}

package payment

import (
	"context"

	"realtalk/models"
)

// LinkCreator produces a hosted payment page for a new reservation.
type LinkCreator interface {
	CreateLink(ctx context.Context, r models.Reservation, unitPrice float64) (string, error)
}

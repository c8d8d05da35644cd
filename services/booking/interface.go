package booking

import (
	"context"
	"time"

	"realtalk/database/repository"
	"realtalk/models"
	"realtalk/services/notification"
	"realtalk/services/payment"

	"go.uber.org/zap"
)

// CatalogService answers read-only questions about what can be booked.
type CatalogService interface {
	Price(ctx context.Context) (float64, error)
	AvailableOn(ctx context.Context, date string) ([]string, error)
	AvailableRange(ctx context.Context, from string, days int) (map[string][]string, error)
	AvailableMonth(ctx context.Context, year, month int) (map[string][]string, error)
	Snapshot(ctx context.Context) (*models.PublicSnapshot, error)
}

// SelectionService manages a requester's in-progress choice of slots.
type SelectionService interface {
	CreateSelection(ctx context.Context) (*models.SelectionSummary, error)
	GetSelection(ctx context.Context, id string) (*models.SelectionSummary, error)
	ToggleSlot(ctx context.Context, id string, req models.ToggleSlotRequest) (*models.SelectionSummary, error)
	ClearSelection(ctx context.Context, id string) error
}

// BookingService turns a requester's choice into a pending reservation.
type BookingService interface {
	Book(ctx context.Context, req models.BookingRequest) (*models.BookingReceipt, error)
}

// RescheduleService is the requester's self-service path.
type RescheduleService interface {
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	RescheduleOptions(ctx context.Context, id string, from *models.SlotRef) (*models.RescheduleOptions, error)
	Reschedule(ctx context.Context, id string, req models.RescheduleRequest) (*models.Reservation, error)
}

// AdminService is the administrator's reservation management.
type AdminService interface {
	ListReservations(ctx context.Context) ([]models.ReservationView, error)
	ConfirmPayment(ctx context.Context, id string) (*models.Reservation, error)
	ResendConfirmation(ctx context.Context, id string) error
	SweepOverdue(ctx context.Context) (*models.SweepResult, error)
	AdminRescheduleOptions(ctx context.Context, id string, from *models.SlotRef) (*models.RescheduleOptions, error)
	AdminReschedule(ctx context.Context, id string, req models.RescheduleRequest) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

// Service is everything the HTTP layer needs from this package.
type Service interface {
	CatalogService
	SelectionService
	BookingService
	RescheduleService
	AdminService
}

// TokenIssuer signs self-service links.
type TokenIssuer interface {
	GenerateToken(subject, scope string, duration time.Duration) (string, error)
}

// Settings are the scalar knobs of the workflows.
type Settings struct {
	Location        *time.Location
	DefaultPrice    float64
	AdminEmail      string
	PublicBaseURL   string
	LinkTTL         time.Duration
	BookingTemplate string
	ConfirmTemplate string
}

// DefaultBookingService implements Service on top of the repositories.
// Every operation reloads state from the store; nothing is cached.
type DefaultBookingService struct {
	Availability repository.AvailabilityRepository
	Reservations repository.ReservationRepository
	Prices       repository.SettingsRepository
	Selections   SelectionStore
	Notifier     notification.Dispatcher
	Payments     payment.LinkCreator // optional
	Tokens       TokenIssuer
	Settings     Settings
	Logger       *zap.Logger
	Now          func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) loc() *time.Location {
	if s.Settings.Location != nil {
		return s.Settings.Location
	}
	return time.UTC
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

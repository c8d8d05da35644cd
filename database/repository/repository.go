package repository

import (
	availabilityRepo "realtalk/database/repository/availability"
	reservationRepo "realtalk/database/repository/reservation"
	settingsRepo "realtalk/database/repository/settings"
)

// Re-export the AvailabilityRepository interface and constructor.
type AvailabilityRepository = availabilityRepo.AvailabilityRepository

var NewMongoAvailabilityRepo = availabilityRepo.NewMongoAvailabilityRepo

// Re-export the ReservationRepository interface and constructor.
type ReservationRepository = reservationRepo.ReservationRepository

var NewMongoReservationRepo = reservationRepo.NewMongoReservationRepo

// Re-export the SettingsRepository interface and constructor.
type SettingsRepository = settingsRepo.SettingsRepository

var NewMongoSettingsRepo = settingsRepo.NewMongoSettingsRepo

// Repository sentinels shared by the services.
var (
	ErrAvailabilityNotFound = availabilityRepo.ErrNotFound
	ErrReservationNotFound  = reservationRepo.ErrNotFound
	ErrSlotTaken            = reservationRepo.ErrSlotTaken
)

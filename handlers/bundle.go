package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers and route guards.
type HandlerBundle struct {
	// Guards
	AdminAuth       gin.HandlerFunc
	ReservationAuth gin.HandlerFunc

	Booking     *BookingHandler
	Reservation *ReservationHandler
	Admin       *AdminHandler
	Auth        *AuthHandler
	Live        *LiveHandler
}

package routes

import (
	"time"

	"realtalk/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the requester-facing endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/price", hb.Booking.GetPrice)
		api.GET("/availability", hb.Booking.GetAvailability)
		api.GET("/availability/stream", hb.Live.Stream)
		api.GET("/availability/:date", hb.Booking.GetAvailabilityForDate)

		api.POST("/selections", hb.Booking.CreateSelection)
		api.GET("/selections/:id", hb.Booking.GetSelection)
		api.PUT("/selections/:id", hb.Booking.ToggleSelection)
		api.DELETE("/selections/:id", hb.Booking.ClearSelection)

		api.POST("/bookings", hb.Booking.CreateBooking)
	}
}

// RegisterReservationRoutes registers the self-service link endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations/:id")
	{
		api.Use(hb.ReservationAuth)
		api.GET("", hb.Reservation.GetReservation)
		api.GET("/reschedule-options", hb.Reservation.GetRescheduleOptions)
		api.POST("/reschedule", hb.Reservation.Reschedule)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/admin/login", hb.Auth.Login)

	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(hb.AdminAuth)

		adminGroup.GET("/availability", hb.Admin.ListAvailability)
		adminGroup.POST("/availability/weekly", hb.Admin.AddWeekly)
		adminGroup.POST("/availability/range", hb.Admin.AddRange)
		adminGroup.POST("/availability/delete-range", hb.Admin.DeleteRange)
		adminGroup.DELETE("/availability/past", hb.Admin.DeletePastDates)
		adminGroup.DELETE("/availability/:date/slots/:slot", hb.Admin.DeleteSlot)
		adminGroup.PUT("/price", hb.Admin.SetPrice)

		adminGroup.GET("/reservations", hb.Admin.ListReservations)
		adminGroup.POST("/reservations/sweep-overdue", hb.Admin.SweepOverdue)
		adminGroup.POST("/reservations/:id/confirm", hb.Admin.ConfirmPayment)
		adminGroup.POST("/reservations/:id/resend", hb.Admin.ResendConfirmation)
		adminGroup.DELETE("/reservations/:id", hb.Admin.DeleteReservation)
		adminGroup.GET("/reservations/:id/reschedule-options", hb.Admin.GetRescheduleOptions)
		adminGroup.POST("/reservations/:id/reschedule", hb.Admin.Reschedule)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}

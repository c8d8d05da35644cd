package handlers

import (
	"errors"
	"net/http"

	"realtalk/models"
	"realtalk/services/availability"
	"realtalk/services/booking"
	"realtalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the administrator's availability and reservation
// management. Routes are guarded by middleware.AdminAuthMiddleware.
type AdminHandler struct {
	Bookings     booking.AdminService
	Availability availability.AvailabilityService
}

func NewAdminHandler(bookings booking.AdminService, avail availability.AvailabilityService) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Availability: avail}
}

func (h *AdminHandler) ListAvailability(c *gin.Context) {
	days, err := h.Availability.ListDeclared(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *AdminHandler) AddWeekly(c *gin.Context) {
	var req models.WeeklySlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	days, err := h.Availability.AddWeekly(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *AdminHandler) AddRange(c *gin.Context) {
	var req models.SlotRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	day, err := h.Availability.AddRange(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *AdminHandler) DeleteRange(c *gin.Context) {
	var req models.SlotRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	day, err := h.Availability.DeleteRange(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *AdminHandler) DeleteSlot(c *gin.Context) {
	day, err := h.Availability.DeleteSlot(c.Request.Context(), c.Param("date"), c.Param("slot"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *AdminHandler) DeletePastDates(c *gin.Context) {
	n, err := h.Availability.DeletePastDates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h *AdminHandler) SetPrice(c *gin.Context) {
	var body struct {
		Value float64 `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Availability.SetPrice(c.Request.Context(), body.Value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": body.Value})
}

func (h *AdminHandler) ListReservations(c *gin.Context) {
	views, err := h.Bookings.ListReservations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": views})
}

// ConfirmPayment reports a failed confirmation email alongside the confirmed
// reservation rather than as a failure, since the confirmation itself stands.
func (h *AdminHandler) ConfirmPayment(c *gin.Context) {
	r, err := h.Bookings.ConfirmPayment(c.Request.Context(), c.Param("id"))
	if err != nil && r != nil && errors.Is(err, booking.ErrNotificationFailed) {
		var wfErr *booking.Error
		errors.As(err, &wfErr)
		c.JSON(http.StatusOK, gin.H{
			"reservation": r,
			"error":       wfErr.Code,
			"message":     wfErr.Message,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": r})
}

func (h *AdminHandler) ResendConfirmation(c *gin.Context) {
	if err := h.Bookings.ResendConfirmation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Confirmation email queued"})
}

func (h *AdminHandler) DeleteReservation(c *gin.Context) {
	if err := h.Bookings.DeleteReservation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) SweepOverdue(c *gin.Context) {
	result, err := h.Bookings.SweepOverdue(c.Request.Context())
	if result == nil {
		respondError(c, err)
		return
	}
	if err != nil {
		utils.GetLogger().Warn("overdue sweep partially failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"result": result, "message": "Some reservations could not be deleted. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *AdminHandler) GetRescheduleOptions(c *gin.Context) {
	opts, err := h.Bookings.AdminRescheduleOptions(c.Request.Context(), c.Param("id"), fromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *AdminHandler) Reschedule(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.Bookings.AdminReschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

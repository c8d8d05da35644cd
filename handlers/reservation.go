package handlers

import (
	"net/http"

	"realtalk/models"
	"realtalk/services/booking"

	"github.com/gin-gonic/gin"
)

// ReservationHandler serves the requester's self-service link. Routes are
// guarded by middleware.ReservationTokenMiddleware.
type ReservationHandler struct {
	Service booking.RescheduleService
}

func NewReservationHandler(svc booking.RescheduleService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// fromQuery reads an optional ?date=&slot= pair.
func fromQuery(c *gin.Context) *models.SlotRef {
	date, slot := c.Query("date"), c.Query("slot")
	if date == "" && slot == "" {
		return nil
	}
	return &models.SlotRef{Date: date, Slot: slot}
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	r, err := h.Service.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReservationHandler) GetRescheduleOptions(c *gin.Context) {
	opts, err := h.Service.RescheduleOptions(c.Request.Context(), c.Param("id"), fromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *ReservationHandler) Reschedule(c *gin.Context) {
	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.Service.Reschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"realtalk/models"
	"realtalk/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the public booking endpoints.
type BookingHandler struct {
	Service booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) GetPrice(c *gin.Context) {
	price, err := h.Service.Price(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

// GetAvailability answers ?month=YYYY-MM, ?from=YYYY-MM-DD&days=N, or with
// no query the whole public snapshot.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	if month := c.Query("month"); month != "" {
		var y, m int
		if _, err := fmt.Sscanf(month, "%4d-%2d", &y, &m); err != nil {
			respondError(c, booking.ErrInvalidMonth)
			return
		}
		slots, err := h.Service.AvailableMonth(ctx, y, m)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"available": slots})
		return
	}

	if from := c.Query("from"); from != "" {
		days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
		if err != nil {
			respondError(c, booking.ErrWindowTooLarge)
			return
		}
		slots, err := h.Service.AvailableRange(ctx, from, days)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"available": slots})
		return
	}

	snap, err := h.Service.Snapshot(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *BookingHandler) GetAvailabilityForDate(c *gin.Context) {
	date := c.Param("date")
	slots, err := h.Service.AvailableOn(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AvailabilityDay{Date: date, Slots: slots})
}

func (h *BookingHandler) CreateSelection(c *gin.Context) {
	sel, err := h.Service.CreateSelection(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sel)
}

func (h *BookingHandler) GetSelection(c *gin.Context) {
	sel, err := h.Service.GetSelection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h *BookingHandler) ToggleSelection(c *gin.Context) {
	var req models.ToggleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sel, err := h.Service.ToggleSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (h *BookingHandler) ClearSelection(c *gin.Context) {
	if err := h.Service.ClearSelection(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	receipt, err := h.Service.Book(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

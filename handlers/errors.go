package handlers

import (
	"errors"
	"net/http"

	"realtalk/services/booking"
	"realtalk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var statusByCode = map[string]int{
	booking.ErrInvalidName.Code:     http.StatusBadRequest,
	booking.ErrInvalidEmail.Code:    http.StatusBadRequest,
	booking.ErrInvalidDate.Code:     http.StatusBadRequest,
	booking.ErrInvalidSlot.Code:     http.StatusBadRequest,
	booking.ErrEmptySelection.Code:  http.StatusBadRequest,
	booking.ErrInvalidPrice.Code:    http.StatusBadRequest,
	booking.ErrInvalidRange.Code:    http.StatusBadRequest,
	booking.ErrAmbiguousSlot.Code:   http.StatusBadRequest,
	booking.ErrSlotNotHeld.Code:     http.StatusBadRequest,
	booking.ErrInvalidWeekday.Code:  http.StatusBadRequest,
	booking.ErrInvalidMonth.Code:    http.StatusBadRequest,
	booking.ErrWindowTooLarge.Code:  http.StatusBadRequest,
	booking.ErrSelectionAbsent.Code: http.StatusNotFound,
	booking.ErrNotFound.Code:        http.StatusNotFound,

	booking.ErrSlotUnavailable.Code:  http.StatusConflict,
	booking.ErrPaymentPending.Code:   http.StatusConflict,
	booking.ErrRescheduleLimit.Code:  http.StatusConflict,
	booking.ErrTooLate.Code:          http.StatusConflict,
	booking.ErrAlreadyConfirmed.Code: http.StatusConflict,
	booking.ErrNotConfirmed.Code:     http.StatusConflict,

	booking.ErrStoreUnavailable.Code:   http.StatusServiceUnavailable,
	booking.ErrNotificationFailed.Code: http.StatusBadGateway,
}

// respondError writes a workflow error as JSON. Anything that is not a
// *booking.Error is logged and reported as a generic failure.
func respondError(c *gin.Context, err error) {
	var wfErr *booking.Error
	if errors.As(err, &wfErr) {
		status, ok := statusByCode[wfErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		utils.JSONError(c, status, wfErr.Code, wfErr.Message)
		return
	}

	utils.GetLogger().Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.")
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
}

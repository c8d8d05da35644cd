package booking

import "fmt"

// Error is a workflow failure the caller can act on. Code is stable and
// machine readable; Message is safe to show to the requester.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any Error with the same code, so detailed errors built with
// withDetail still satisfy errors.Is against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// withDetail returns a copy of sentinel carrying a more specific message.
func withDetail(sentinel *Error, format string, args ...any) *Error {
	return &Error{Code: sentinel.Code, Message: fmt.Sprintf(format, args...)}
}

// Validation.
var (
	ErrInvalidName     = newError("invalid_name", "Please enter your name.")
	ErrInvalidEmail    = newError("invalid_email", "Please enter a valid email address.")
	ErrInvalidDate     = newError("invalid_date", "Dates must be formatted YYYY-MM-DD.")
	ErrInvalidSlot     = newError("invalid_slot", "Times must be HH:MM on a half-hour boundary.")
	ErrEmptySelection  = newError("empty_selection", "Please choose at least one class time.")
	ErrInvalidPrice    = newError("invalid_price", "Price must be greater than zero.")
	ErrInvalidRange    = newError("invalid_time_range", "Start must be before end and both on a half-hour boundary.")
	ErrAmbiguousSlot   = newError("ambiguous_slot", "Please choose which class time to move.")
	ErrSlotNotHeld     = newError("slot_not_held", "That class time is not part of this reservation.")
	ErrInvalidWeekday  = newError("invalid_weekday", "Weekday must be between 0 (Sunday) and 6 (Saturday).")
	ErrInvalidMonth    = newError("invalid_month", "Month must be between 1 and 12.")
	ErrWindowTooLarge  = newError("window_too_large", "Please request a shorter date range.")
	ErrSelectionAbsent = newError("selection_not_found", "Your selection has expired. Please choose your class times again.")
)

// Workflow outcomes.
var (
	ErrSlotUnavailable  = newError("slot_unavailable", "That class time is no longer available. Please choose another.")
	ErrNotFound         = newError("not_found", "Reservation not found.")
	ErrPaymentPending   = newError("payment_pending", "Rescheduling opens once your payment has been confirmed.")
	ErrRescheduleLimit  = newError("reschedule_limit", "You have already rescheduled once. Please contact the instructor to make further changes.")
	ErrTooLate          = newError("too_late", "Classes can only be moved more than an hour before they start. Please contact the instructor.")
	ErrAlreadyConfirmed = newError("already_confirmed", "Payment for this reservation is already confirmed.")
	ErrNotConfirmed     = newError("not_confirmed", "Payment for this reservation has not been confirmed yet.")
)

// Infrastructure. The requester is only ever told to try again.
var (
	ErrStoreUnavailable   = newError("store_unavailable", "Something went wrong while saving. Please try again.")
	ErrNotificationFailed = newError("notification_failed", "We could not send the notification. Please try again.")
)

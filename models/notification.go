package models

// Email template kinds.
const (
	EmailBookingAdmin     = "booking_admin"
	EmailBookingRequester = "booking_requester"
	EmailConfirmation     = "payment_confirmed"
)

// EmailMessage is a template id plus flat template parameters. Values are
// strings or numbers only.
type EmailMessage struct {
	Kind       string         `json:"kind"`
	TemplateID string         `json:"templateId"`
	Params     map[string]any `json:"params"`
}

// PushMessage is delivered to the administrator's devices.
type PushMessage struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"realtalk/models"
)

const DefaultEmailJSURL = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSSender posts template emails to the EmailJS REST API.
type EmailJSSender struct {
	ServiceID  string
	PublicKey  string
	PrivateKey string
	URL        string
	HTTPClient *http.Client
}

func NewEmailJSSender(serviceID, publicKey, privateKey string) *EmailJSSender {
	return &EmailJSSender{
		ServiceID:  serviceID,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		URL:        DefaultEmailJSURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams map[string]any `json:"template_params"`
}

func (s *EmailJSSender) Send(ctx context.Context, msg models.EmailMessage) error {
	if msg.TemplateID == "" {
		return fmt.Errorf("EmailJS: no template configured for %s", msg.Kind)
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      s.ServiceID,
		TemplateID:     msg.TemplateID,
		UserID:         s.PublicKey,
		AccessToken:    s.PrivateKey,
		TemplateParams: msg.Params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("EmailJS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("EmailJS failed with status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}

package payment

import (
	"context"
	"fmt"
	"math"

	"realtalk/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeCheckout creates Stripe Checkout sessions. The API key is read from
// stripe.Key, which main sets at startup.
type StripeCheckout struct {
	Currency      string
	PublicBaseURL string
	ProductName   string
}

func NewStripeCheckout(currency, publicBaseURL string) *StripeCheckout {
	return &StripeCheckout{
		Currency:      currency,
		PublicBaseURL: publicBaseURL,
		ProductName:   "Korean conversation class (30 min)",
	}
}

func (s *StripeCheckout) CreateLink(ctx context.Context, r models.Reservation, unitPrice float64) (string, error) {
	if stripe.Key == "" {
		return "", fmt.Errorf("stripe is not configured")
	}

	params := s.checkoutParams(r, unitPrice)
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session for %s: %w", r.ID, err)
	}
	return sess.URL, nil
}

func (s *StripeCheckout) checkoutParams(r models.Reservation, unitPrice float64) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(fmt.Sprintf("%s/reservations/%s?paid=1", s.PublicBaseURL, r.ID)),
		CancelURL:         stripe.String(fmt.Sprintf("%s/reservations/%s?paid=0", s.PublicBaseURL, r.ID)),
		ClientReferenceID: stripe.String(r.ID),
		CustomerEmail:     stripe.String(r.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.Currency),
					UnitAmount: stripe.Int64(minorUnits(unitPrice)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(s.ProductName),
					},
				},
				Quantity: stripe.Int64(int64(r.TotalSessions)),
			},
		},
	}
}

// minorUnits converts a price in major currency units to cents.
func minorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

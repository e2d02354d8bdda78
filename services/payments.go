package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dchest/uniuri"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// PaymentGateway creates checkout sessions with an external payment
// provider and returns the URL the donor is sent to.
type PaymentGateway interface {
	CreateSession(ctx context.Context, amount float64, userID uuid.UUID, projectID uuid.UUID) (string, error)
}

// NewPaymentGateway returns the Stripe gateway when an API key is
// configured and the local fallback otherwise.
func NewPaymentGateway(apiKey string, frontendURL string) PaymentGateway {
	if apiKey == "" {
		slog.Info("STRIPE_KEY not set, using local payment sessions")
		return LocalPaymentGateway{}
	}
	return NewStripePaymentGateway(apiKey, frontendURL)
}

// StripePaymentGateway creates Stripe Checkout sessions for one-off
// donation payments.
type StripePaymentGateway struct {
	SuccessURL string
	CancelURL  string
}

func NewStripePaymentGateway(apiKey string, frontendURL string) *StripePaymentGateway {
	stripe.Key = apiKey
	return &StripePaymentGateway{
		SuccessURL: frontendURL + "/payment-success",
		CancelURL:  frontendURL + "/payment-error",
	}
}

func (g *StripePaymentGateway) CreateSession(ctx context.Context, amount float64, userID uuid.UUID, projectID uuid.UUID) (string, error) {
	params := &stripe.CheckoutSessionParams{
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(int64(amount * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Donation"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.SuccessURL),
		CancelURL:  stripe.String(g.CancelURL),
	}
	params.AddMetadata("userId", userID.String())
	params.AddMetadata("projectId", projectID.String())

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	slog.Info("created stripe checkout session",
		"sessionId", s.ID,
		"userId", userID,
		"projectId", projectID,
		"amount", amount)
	return s.URL, nil
}

// LocalPaymentGateway mints checkout URLs without contacting Stripe. Used
// when no API key is configured and in tests.
type LocalPaymentGateway struct{}

func (LocalPaymentGateway) CreateSession(ctx context.Context, amount float64, userID uuid.UUID, projectID uuid.UUID) (string, error) {
	sessionID := "cs_" + uniuri.NewLen(24)
	slog.Info("created local payment session",
		"sessionId", sessionID,
		"userId", userID,
		"projectId", projectID,
		"amount", amount)
	return "https://checkout.stripe.com/pay/" + sessionID, nil
}

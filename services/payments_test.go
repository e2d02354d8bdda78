package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewPaymentGatewaySelection(t *testing.T) {
	gw := NewPaymentGateway("", "http://localhost:3000")
	assert.IsType(t, LocalPaymentGateway{}, gw)

	gw = NewPaymentGateway("sk_test_123", "http://localhost:3000")
	stripeGw, ok := gw.(*StripePaymentGateway)
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:3000/payment-success", stripeGw.SuccessURL)
	assert.Equal(t, "http://localhost:3000/payment-error", stripeGw.CancelURL)
}

func TestLocalPaymentGatewayMintsCheckoutURLs(t *testing.T) {
	gw := LocalPaymentGateway{}

	url, err := gw.CreateSession(context.Background(), 50, uuid.New(), uuid.New())
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://checkout.stripe.com/pay/cs_"))

	other, err := gw.CreateSession(context.Background(), 50, uuid.New(), uuid.New())
	assert.NoError(t, err)
	assert.NotEqual(t, url, other)
}

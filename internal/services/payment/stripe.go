package payment

import (
	"fmt"

	"paperdesk_backend/internal/config"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider confirms charges through Stripe payment intents.
type StripeProvider struct {
	api       *client.API
	currency  string
	returnURL string
}

func NewStripeProvider(cfg *config.Config) (*StripeProvider, error) {
	if cfg.Payment.StripeSecret == "" {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}

	api := &client.API{}
	api.Init(cfg.Payment.StripeSecret, nil)

	return &StripeProvider{
		api:       api,
		currency:  cfg.Payment.Currency,
		returnURL: cfg.Payment.ReturnURL,
	}, nil
}

// Confirm creates and confirms a payment intent in one call. The
// idempotency key makes retries of the same order/method pair safe.
func (p *StripeProvider) Confirm(charge Charge) error {
	currency := charge.Currency
	if currency == "" {
		currency = p.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(charge.AmountCents),
		Currency:      stripe.String(currency),
		Description:   stripe.String(charge.Description),
		PaymentMethod: stripe.String(charge.PaymentMethod),
		Confirm:       stripe.Bool(true),
	}
	if p.returnURL != "" {
		params.ReturnURL = stripe.String(p.returnURL)
	}
	if charge.IdempotencyKey != "" {
		params.SetIdempotencyKey(charge.IdempotencyKey)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return fmt.Errorf("payment intent failed: %w", err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
		return nil
	default:
		return fmt.Errorf("payment intent not completed: status %s", intent.Status)
	}
}

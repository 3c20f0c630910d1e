package payment

// Charge describes one payment attempt against a stored payment method.
type Charge struct {
	AmountCents    int64
	Currency       string
	Description    string
	PaymentMethod  string
	IdempotencyKey string
}

// Provider confirms charges with an external payment processor.
type Provider interface {
	Confirm(charge Charge) error
}

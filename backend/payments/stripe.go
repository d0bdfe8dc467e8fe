package payments

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// CheckoutCreator opens a hosted payment session. Controllers depend
// on this interface instead of a process-global Stripe client so the
// payment side can be substituted in tests.
type CheckoutCreator interface {
	CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeClient is the production CheckoutCreator backed by the Stripe
// API. Construct it once at startup and share it across requests.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func (s *StripeClient) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return s.api.CheckoutSessions.New(params)
}

// VerifyEvent authenticates a webhook delivery: the signature header
// is checked against the exact raw request bytes with the shared
// webhook secret. Any re-serialization of the payload before this
// call breaks verification.
func VerifyEvent(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, secret)
}

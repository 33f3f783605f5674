package checkout

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// metadataOrderKey is the session metadata key carrying the internal order ID.
const metadataOrderKey = "orderId"

// StripeProvider implements Provider against the Stripe Checkout API.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider creates a Stripe-backed checkout provider.
func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

// CreateSession creates a one-item payment-mode checkout session carrying the
// order ID in its metadata and returns the hosted payment page URL.
func (p *StripeProvider) CreateSession(req CreateSessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.CustomerEmail),
		SuccessURL:    stripe.String(req.SuccessURL),
		CancelURL:     stripe.String(req.CancelURL),
	}
	params.AddMetadata(metadataOrderKey, req.OrderID)

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	return fromStripeSession(sess), nil
}

// RetrieveSession fetches a session's current state from Stripe.
func (p *StripeProvider) RetrieveSession(sessionID string) (*Session, error) {
	sess, err := p.api.CheckoutSessions.Get(sessionID, nil)
	if err != nil {
		return nil, mapStripeError(err)
	}
	return fromStripeSession(sess), nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *Session {
	out := &Session{
		ID:            sess.ID,
		URL:           sess.URL,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		CustomerEmail: sess.CustomerEmail,
		OrderID:       sess.Metadata[metadataOrderKey],
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}
	return out
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, stripeErr.Msg)
		}
		return fmt.Errorf("stripe request failed: %w", err)
	}
	// Transport-level failures reach here without a stripe.Error.
	return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
}

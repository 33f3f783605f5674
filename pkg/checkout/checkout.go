package checkout

import "errors"

// Session is the provider's view of a checkout session. All financial facts
// come from here, never from the client.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	TransactionID string
	AmountTotal   int64 // minor units
	CustomerEmail string
	OrderID       string // set from session metadata at creation time
}

// PaymentStatusPaid is the provider status for a settled session.
const PaymentStatusPaid = "paid"

// CreateSessionRequest carries everything needed to initiate a checkout.
type CreateSessionRequest struct {
	OrderID       string
	ProductName   string
	CustomerEmail string
	AmountMinor   int64 // price in minor units (cents)
	SuccessURL    string
	CancelURL     string
}

// Provider is an external checkout/payment provider.
type Provider interface {
	CreateSession(req CreateSessionRequest) (*Session, error)
	RetrieveSession(sessionID string) (*Session, error)
}

// ErrSessionNotFound means the session reference is unknown to the provider.
var ErrSessionNotFound = errors.New("checkout session not found")

// ErrProviderUnavailable means the provider could not be reached.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

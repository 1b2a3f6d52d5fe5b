package payment

import (
	"context"
	"errors"
)

// Session is the provider-hosted checkout resource the client is redirected to.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// LineItem carries the authoritative unit amount in the smallest currency
// unit, re-derived from the restaurant menu — never from client input.
type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int64
}

type SessionParams struct {
	OrderID       string
	CustomerEmail string
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
}

// Event kinds the webhook reconciliation cares about. Anything else comes
// back as EventIgnored and must not mutate state.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventCheckoutExpired   = "checkout.session.expired"
	EventIgnored           = "ignored"
)

type Event struct {
	Type        string
	SessionID   string
	OrderID     string
	AmountTotal int64
}

var ErrInvalidSignature = errors.New("webhook signature verification failed")

// Provider abstracts the hosted-checkout payment service.
type Provider interface {
	CreateSession(ctx context.Context, params *SessionParams) (*Session, error)
	ExpireSession(ctx context.Context, sessionID string) error
	ParseEvent(payload []byte, signature string) (*Event, error)
}

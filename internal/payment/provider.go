package payment

import (
	"context"
	"net/http"

	"github.com/riqsound/booking-backend/internal/pkg/apperror"
)

var ErrInvalidSignature = apperror.New(http.StatusBadRequest, "invalid webhook payload or signature")

// EventCheckoutCompleted is the only event type that changes booking state.
// All other event types are acknowledged without side effects.
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutParams describes one hosted checkout session to create.
type CheckoutParams struct {
	ItemName        string
	ItemDescription string
	UnitAmount      int64 // minor currency units (cents)
	Currency        string
	Quantity        int64
	BookingID       string // attached as metadata, echoed back in webhooks
	SuccessURL      string
	CancelURL       string
}

// CheckoutSession is a provider-hosted payment flow for one booking.
type CheckoutSession struct {
	ID  string
	URL string
}

// CheckoutCompleted carries the payment outcome of a finished checkout.
type CheckoutCompleted struct {
	BookingID       string
	PaymentStatus   string
	PaymentIntentID string
}

// WebhookEvent is a verified provider notification.
// Checkout is non-nil only when Type is EventCheckoutCompleted.
type WebhookEvent struct {
	Type     string
	Checkout *CheckoutCompleted
}

// Provider abstracts the external payment system: hosted checkout session
// creation and webhook authenticity verification.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	VerifyWebhook(payload []byte, sigHeader string) (*WebhookEvent, error)
}

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/riqsound/booking-backend/internal/pkg/apperror"
)

// StripeProvider implements Provider using Stripe Checkout.
// The API client carries its own key; the global stripe.Key is never set.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProvider creates a Stripe-backed payment provider.
func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeProvider{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession creates a hosted Stripe Checkout session for one booking.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	sessParams := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(params.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(params.ItemName),
						Description: stripe.String(params.ItemDescription),
					},
					UnitAmount: stripe.Int64(params.UnitAmount),
				},
				Quantity: stripe.Int64(params.Quantity),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessParams.Context = ctx
	sessParams.AddMetadata("booking_id", params.BookingID)

	sess, err := p.api.CheckoutSessions.New(sessParams)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}

	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// VerifyWebhook checks the Stripe-Signature header against the webhook secret
// and normalizes the event. Unverified payloads are never parsed further.
func (p *StripeProvider) VerifyWebhook(payload []byte, sigHeader string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	ev := &WebhookEvent{Type: string(event.Type)}

	if event.Type == stripe.EventTypeCheckoutSessionCompleted {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, apperror.Wrap(err, http.StatusBadRequest, "malformed checkout session payload")
		}

		checkout := &CheckoutCompleted{
			BookingID:     sess.Metadata["booking_id"],
			PaymentStatus: string(sess.PaymentStatus),
		}
		if sess.PaymentIntent != nil {
			checkout.PaymentIntentID = sess.PaymentIntent.ID
		}
		ev.Checkout = checkout
	}

	return ev, nil
}

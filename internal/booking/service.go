package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/riqsound/booking-backend/internal/payment"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// CreateCheckoutRequest carries one filled-out booking form.
type CreateCheckoutRequest struct {
	Service ServiceInfo
	Client  ClientInfo
	Session SessionInfo
	Project ProjectInfo
}

// CheckoutResult is the outcome of a successful checkout creation.
type CheckoutResult struct {
	BookingID string
	URL       string // provider-hosted payment page
}

type Service interface {
	// CreateCheckout validates the request, persists a pending record and
	// creates a hosted checkout session for it.
	CreateCheckout(ctx context.Context, req CreateCheckoutRequest) (*CheckoutResult, error)

	// ConfirmFromWebhook verifies a provider notification and, for
	// completed checkouts, transitions the referenced booking to confirmed.
	ConfirmFromWebhook(ctx context.Context, payload []byte, sigHeader string) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
}

type service struct {
	repo            Repository
	provider        payment.Provider
	frontendBaseURL string
}

func NewService(repo Repository, provider payment.Provider, frontendBaseURL string) Service {
	return &service{
		repo:            repo,
		provider:        provider,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
	}
}

func validateCreateRequest(req CreateCheckoutRequest, now time.Time) error {
	if req.Service.ID == "" || req.Service.Name == "" {
		return ErrServiceRequired
	}
	if req.Service.Price <= 0 {
		return ErrInvalidPrice
	}
	if strings.TrimSpace(req.Client.FullName) == "" {
		return ErrFullNameRequired
	}
	if !phonePattern.MatchString(req.Client.PhoneNumber) {
		return ErrInvalidPhoneNumber
	}

	date, err := time.Parse("2006-01-02", req.Session.Date)
	if err != nil {
		return ErrInvalidDate
	}
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return ErrDatePast
	}

	if !IsValidTimeSlot(req.Session.Time) {
		return ErrInvalidTimeSlot
	}
	if !IsValidLocation(req.Session.Location) {
		return ErrInvalidLocation
	}
	return nil
}

func (s *service) CreateCheckout(ctx context.Context, req CreateCheckoutRequest) (*CheckoutResult, error) {
	now := time.Now()

	if err := validateCreateRequest(req, now); err != nil {
		return nil, err
	}

	b := &Booking{
		ID:        NewBookingID(now, req.Client.FullName),
		CreatedAt: now.UTC(),
		Service:   req.Service,
		Client:    req.Client,
		Session:   req.Session,
		Project:   req.Project,
		Status:    StatusPending,
	}

	// The record must be durable before the provider is called, so a
	// provider-side session never exists without a local record.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		ItemName:        req.Service.Name,
		ItemDescription: fmt.Sprintf("Session on %s at %s", req.Session.Date, req.Session.Time),
		UnitAmount:      req.Service.Price * 100, // whole units to cents
		Currency:        "usd",
		Quantity:        1,
		BookingID:       b.ID,
		SuccessURL:      s.frontendBaseURL + "/success?session_id={CHECKOUT_SESSION_ID}&booking_id=" + b.ID,
		CancelURL:       s.frontendBaseURL + "/booking?canceled=true",
	})
	if err != nil {
		// The pending record stays in place without a session id: orphaned
		// but recoverable, left for operator cleanup. No rollback, no retry.
		log.Printf("checkout session creation failed for booking %s: %v", b.ID, err)
		return nil, ErrProviderFailure
	}

	b.ProviderSessionID = sess.ID
	if err := s.repo.Put(ctx, b); err != nil {
		return nil, err
	}

	return &CheckoutResult{BookingID: b.ID, URL: sess.URL}, nil
}

func (s *service) ConfirmFromWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.provider.VerifyWebhook(payload, sigHeader)
	if err != nil {
		return err
	}

	if event.Type != payment.EventCheckoutCompleted || event.Checkout == nil {
		// Other event types are acknowledged without side effects.
		return nil
	}

	b, err := s.repo.GetByID(ctx, event.Checkout.BookingID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("webhook references unknown booking %q", event.Checkout.BookingID)
			return ErrUnknownBooking
		}
		return err
	}

	// pending -> confirmed is the only transition; a replayed delivery
	// rewrites the same confirmed state.
	b.Status = StatusConfirmed
	b.PaymentStatus = event.Checkout.PaymentStatus
	b.PaymentIntentID = event.Checkout.PaymentIntentID

	return s.repo.Put(ctx, b)
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Booking, error) {
	return s.repo.ListAll(ctx)
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riqsound/booking-backend/internal/booking"
	"github.com/riqsound/booking-backend/internal/pkg/request"
	"github.com/riqsound/booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// CreateCheckoutSession validates the booking form, persists a pending
// booking and responds with the hosted checkout URL.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := booking.CreateCheckoutRequest{
		Service: booking.ServiceInfo{
			ID:    body.Service.ID,
			Name:  body.Service.Name,
			Price: body.Service.Price,
		},
		Client: booking.ClientInfo{
			FullName:    body.Client.FullName,
			PhoneNumber: body.Client.PhoneNumber,
		},
		Session: booking.SessionInfo{
			Date:     body.Session.Date,
			Time:     body.Session.Time,
			Location: body.Session.Location,
		},
		Project: booking.ProjectInfo{
			Description: body.Project.Description,
		},
	}

	result, err := h.service.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateCheckoutSessionResponse{URL: result.URL})
}

// Webhook receives provider notifications. The raw body is passed through
// untouched because signature verification covers the exact bytes sent.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")

	err = h.service.ConfirmFromWebhook(c.Request.Context(), payload, sigHeader)
	if err != nil && !errors.Is(err, booking.ErrUnknownBooking) {
		response.Error(c, err)
		return
	}

	// Unknown bookings are acknowledged too: the provider must not be told
	// to retry an application-level miss.
	c.JSON(http.StatusOK, WebhookResponse{Received: true})
}

// List returns every stored booking record.
func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	// Avoid JSON null for an empty store.
	if bookings == nil {
		bookings = make([]*booking.Booking, 0)
	}

	c.JSON(http.StatusOK, bookings)
}

// Get returns a single booking record by id.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

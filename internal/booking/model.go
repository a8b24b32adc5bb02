package booking

import (
	"net/http"
	"time"

	"github.com/riqsound/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrAlreadyExists      = apperror.New(http.StatusConflict, "booking id already exists")
	ErrServiceRequired    = apperror.New(http.StatusBadRequest, "service id, name and price are required")
	ErrInvalidPrice       = apperror.New(http.StatusBadRequest, "service price must be a non-negative amount")
	ErrFullNameRequired   = apperror.New(http.StatusBadRequest, "client full name is required")
	ErrInvalidPhoneNumber = apperror.New(http.StatusBadRequest, "phone number must be in format XXX-XXX-XXXX")
	ErrInvalidDate        = apperror.New(http.StatusBadRequest, "session date must be a valid date in format YYYY-MM-DD")
	ErrDatePast           = apperror.New(http.StatusBadRequest, "session date cannot be in the past")
	ErrInvalidTimeSlot    = apperror.New(http.StatusBadRequest, "session time must be one of the available slots")
	ErrInvalidLocation    = apperror.New(http.StatusBadRequest, "session location is not available")
	ErrUnknownBooking     = apperror.New(http.StatusNotFound, "webhook references an unknown booking")
	ErrProviderFailure    = apperror.New(http.StatusBadGateway, "failed to create checkout session")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// TimeSlots is the closed set of permissible session start times,
// matching the slots offered by the booking form.
var TimeSlots = []string{
	"10:00 AM",
	"12:00 PM",
	"2:00 PM",
	"4:00 PM",
	"6:00 PM",
	"8:00 PM",
	"10:00 PM",
	"12:00 AM",
}

// Locations is the closed set of studios a session can be booked at.
var Locations = []string{
	"Dreamstar",
}

// IsValidTimeSlot reports whether t is one of the offered start times.
func IsValidTimeSlot(t string) bool {
	for _, slot := range TimeSlots {
		if t == slot {
			return true
		}
	}
	return false
}

// IsValidLocation reports whether loc is one of the bookable studios.
func IsValidLocation(loc string) bool {
	for _, l := range Locations {
		if loc == l {
			return true
		}
	}
	return false
}

// ServiceInfo identifies the booked service. Price is in whole currency
// units as submitted by the form; it is converted to cents only when the
// checkout session is created.
type ServiceInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type ClientInfo struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

type SessionInfo struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // one of TimeSlots
	Location string `json:"location"`
}

type ProjectInfo struct {
	Description string `json:"description"`
}

// Booking is the durable record of one studio-session request and its
// payment lifecycle. The struct's JSON form is also its on-disk format.
type Booking struct {
	ID                string      `json:"id"`
	CreatedAt         time.Time   `json:"createdAt"`
	Service           ServiceInfo `json:"service"`
	Client            ClientInfo  `json:"client"`
	Session           SessionInfo `json:"session"`
	Project           ProjectInfo `json:"project"`
	Status            Status      `json:"status"`
	ProviderSessionID string      `json:"providerSessionId,omitempty"`
	PaymentStatus     string      `json:"paymentStatus,omitempty"`
	PaymentIntentID   string      `json:"paymentIntentId,omitempty"`
}

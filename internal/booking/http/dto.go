package http

// ServiceBody identifies the service being booked. Price is in whole
// currency units, as submitted by the booking form.
type ServiceBody struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"required"`
}

type ClientBody struct {
	FullName    string `json:"fullName" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type SessionBody struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location" binding:"required"`
}

type ProjectBody struct {
	Description string `json:"description"`
}

// CreateCheckoutSessionRequest is the booking form payload.
type CreateCheckoutSessionRequest struct {
	Service ServiceBody `json:"service" binding:"required"`
	Client  ClientBody  `json:"client" binding:"required"`
	Session SessionBody `json:"session" binding:"required"`
	Project ProjectBody `json:"project"`
}

// CreateCheckoutSessionResponse carries the hosted checkout URL the
// frontend redirects the client to.
type CreateCheckoutSessionResponse struct {
	URL string `json:"url"`
}

// WebhookResponse acknowledges a provider notification.
type WebhookResponse struct {
	Received bool `json:"received"`
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the booking endpoints. Checkout creation and the
// webhook are public by contract; the administrative record endpoints
// require the admin key.
func RegisterRoutes(r *gin.Engine, h *Handler, adminMiddleware gin.HandlerFunc) {
	r.POST("/create-checkout-session", h.CreateCheckoutSession)
	r.POST("/webhook", h.Webhook)

	admin := r.Group("/bookings")
	admin.Use(adminMiddleware)
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
	}
}

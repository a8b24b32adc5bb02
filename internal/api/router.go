package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/riqsound/booking-backend/internal/booking"
	bookingHttp "github.com/riqsound/booking-backend/internal/booking/http"
)

// Config holds the dependencies and settings the router needs.
type Config struct {
	ProdOrigins     string
	FrontendBaseURL string
	BookingService  booking.Service
	AdminKeyHash    string
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, admin auth) and
// registering routes.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS: the booking form is submitted from the frontend origin.
	corsConfig := cors.DefaultConfig()
	origins := []string{cfg.FrontendBaseURL}
	if cfg.ProdOrigins != "" {
		origins = append(origins, strings.Split(cfg.ProdOrigins, ",")...)
	}
	corsConfig.AllowOrigins = origins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"}
	r.Use(cors.New(corsConfig))

	// adminMiddleware: protects the administrative record endpoints.
	adminMiddleware := RequireAdminKey(cfg.AdminKeyHash)

	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	bookingHttp.RegisterRoutes(r, bookingHandler, adminMiddleware)

	// Plain-text endpoints kept from the original site backend.
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "RIQ booking server is running!")
	})
	r.GET("/success", func(c *gin.Context) {
		c.String(http.StatusOK, "Payment successful! Your booking has been confirmed.")
	})

	return r
}

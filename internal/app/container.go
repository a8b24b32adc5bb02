package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/riqsound/booking-backend/internal/api"
	"github.com/riqsound/booking-backend/internal/booking"
	"github.com/riqsound/booking-backend/internal/config"
	"github.com/riqsound/booking-backend/internal/payment"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	ProdOrigins     string
	FrontendBaseURL string
	BookingsBackend string
	BookingsDir     string
	DBPool          *pgxpool.Pool // required when BookingsBackend is postgres
	PaymentProvider payment.Provider
	AdminKeyHash    string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	// Booking repository, backed by flat files or Postgres.
	var (
		repo booking.Repository
		err  error
	)
	switch cfg.BookingsBackend {
	case config.BackendPostgres:
		repo, err = booking.NewPgxRepository(ctx, cfg.DBPool)
	default:
		repo, err = booking.NewFileRepository(cfg.BookingsDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init booking repository: %w", err)
	}

	// Booking module
	bookingService := booking.NewService(repo, cfg.PaymentProvider, cfg.FrontendBaseURL)

	// Router
	router := api.NewRouter(api.Config{
		ProdOrigins:     cfg.ProdOrigins,
		FrontendBaseURL: cfg.FrontendBaseURL,
		BookingService:  bookingService,
		AdminKeyHash:    cfg.AdminKeyHash,
	})

	return &Container{
		Router:         router,
		BookingService: bookingService,
	}, nil
}

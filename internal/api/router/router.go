package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medibook/medibook/internal/appointments"
	"github.com/medibook/medibook/internal/booking"
	"github.com/medibook/medibook/internal/directory"
	httpmiddleware "github.com/medibook/medibook/internal/http/middleware"
	"github.com/medibook/medibook/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	DirectoryHandler    *directory.Handler
	AppointmentsHandler *appointments.Handler
	BookingHandler      *booking.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// AuthRateLimit caps login/register attempts per second per IP.
	// Zero disables the limiter.
	AuthRateLimit float64
	AuthBurst     int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/auth", func(auth chi.Router) {
		if cfg.AuthRateLimit > 0 {
			auth.Use(httpmiddleware.RateLimit(cfg.AuthRateLimit, cfg.AuthBurst))
		}
		auth.Post("/login", cfg.DirectoryHandler.Login)
		auth.Post("/register", cfg.DirectoryHandler.Register)
	})

	r.Patch("/accounts/{accountID}/profile", cfg.DirectoryHandler.UpdateProfile)
	r.Get("/accounts/{accountID}/appointments", cfg.AppointmentsHandler.ListForAccount)

	r.Get("/doctors", cfg.DirectoryHandler.ListDoctors)
	r.Get("/doctors/{doctorID}/calendar", cfg.AppointmentsHandler.Calendar)

	r.Patch("/appointments/{appointmentID}/status", cfg.AppointmentsHandler.SetStatus)

	r.Route("/bookings", func(b chi.Router) {
		b.Post("/agentic", cfg.BookingHandler.SubmitAgentic)
		b.Post("/agentic/{sessionID}/confirm", cfg.BookingHandler.ConfirmAgentic)
		b.Post("/agentic/{sessionID}/cancel", cfg.BookingHandler.CancelAgentic)
		b.Post("/slots", cfg.BookingHandler.FindSlots)
		b.Post("/slots/{sessionID}/confirm", cfg.BookingHandler.ConfirmSlot)
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

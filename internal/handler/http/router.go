package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/krestenlaust/fappen/internal/service"
	"github.com/krestenlaust/fappen/pkg/health"
	"github.com/krestenlaust/fappen/pkg/middleware"
)

// NewRouter creates a chi router with all widget routes registered.
func NewRouter(
	kioskService *service.KioskService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("fappen"))
	r.Use(middleware.Tracing("fappen"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	kioskHandler := NewKioskHandler(kioskService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(CORS)

		r.Route("/widget", func(r chi.Router) {
			r.Get("/access", kioskHandler.GetAccess)
			r.Get("/catalogue", kioskHandler.GetCatalogue)

			r.Post("/sessions", kioskHandler.StartSession)
			r.Route("/sessions/{sessionID}", func(r chi.Router) {
				r.Use(SessionLogContext)

				r.Get("/cart", kioskHandler.GetCart)
				r.Post("/cart/items/{productID}", kioskHandler.AddItem)
				r.Put("/cart/items/{productID}", kioskHandler.SetItemQuantity)
				r.Post("/checkout", kioskHandler.Checkout)
			})

			r.Get("/members/{username}", kioskHandler.GetMember)
			r.Get("/members/{username}/balance", kioskHandler.GetBalance)
		})

		r.Get("/receipts/{memberID}", kioskHandler.ListReceipts)
	})

	return r
}

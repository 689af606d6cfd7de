package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter mounts the partner and admin API on a chi router.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))
	r.Use(RequestID)
	r.Use(h.CountRequests)

	r.Get("/healthz", h.Healthz)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	}

	r.Route("/api/partner/{email}", func(r chi.Router) {
		r.Use(h.JWTAuth)
		r.Use(h.RequireSelfOrAdmin)
		r.Get("/connections", h.GetConnections)
		r.Get("/summary", h.GetSummary)
		r.Post("/payout", h.PostPayout)
		r.Get("/payout-ceiling/{accountNo}", h.GetPayoutCeiling)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(h.JWTAuth)
		r.Use(h.RequireAdmin)
		r.Get("/ib-requests", h.ListIBRequests)
		r.Put("/ib-requests/{email}/approve", h.ApproveIBRequest)
		r.Put("/ib-requests/{email}/reject", h.RejectIBRequest)
	})

	return r
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ib-partner-service/internal/enrich"
	"ib-partner-service/internal/interfaces"
	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/payout"
	"ib-partner-service/internal/session"
	"ib-partner-service/pkg/metrics"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Enrich   *enrich.Service
	Payout   *payout.Service
	Backend  interfaces.Backend
	Auth     *AuthService
	Metrics  *metrics.Collector
	Sessions session.Provider
}

// NewHandler creates a new handler
func NewHandler(enrichSvc *enrich.Service, payoutSvc *payout.Service, backend interfaces.Backend, auth *AuthService, collector *metrics.Collector) *Handler {
	return &Handler{
		Enrich:   enrichSvc,
		Payout:   payoutSvc,
		Backend:  backend,
		Auth:     auth,
		Metrics:  collector,
		Sessions: session.NewMemoryProvider(),
	}
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetConnections renders the "My Connections" dataset for one partner.
// Lookup failures degrade to an empty list inside the enrichment pipeline;
// this handler always answers 200 with a list.
func (h *Handler) GetConnections(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	code, err := h.Backend.ReferralCode(r.Context(), email)
	if err != nil {
		logger.ErrorWithErr(r.Context(), "Referral code lookup failed", err, "email", email)
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}

	start := time.Now()
	connections := h.Enrich.Enrich(r.Context(), code)
	if h.Metrics != nil {
		h.Metrics.RecordEnrichment(time.Since(start), len(connections))
	}

	writeJSON(w, http.StatusOK, connections)
}

// GetSummary renders a partner's rolled-up totals, including the estimated
// and the authoritative payable commission side by side.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	start := time.Now()
	summary, err := h.Enrich.Summary(r.Context(), email)
	if err != nil {
		logger.ErrorWithErr(r.Context(), "Partner summary failed", err, "email", email)
		writeError(w, http.StatusBadGateway, "failed to build partner summary")
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordEnrichment(time.Since(start), len(summary.Connections))
	}

	writeJSON(w, http.StatusOK, summary)
}

// PostPayout submits a commission withdrawal for a partner. Backend
// business-rule rejections pass through with the backend's message
// untouched.
func (h *Handler) PostPayout(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req struct {
		AccountNo int64   `json:"accountNo"`
		AmountUSD float64 `json:"amountUsd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Payout.Request(r.Context(), email, req.AccountNo, req.AmountUSD)
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordPayout("error")
		}
		logger.ErrorWithErr(r.Context(), "Payout submission failed", err, "email", email, "account", req.AccountNo)
		writeError(w, http.StatusBadGateway, "payout submission failed")
		return
	}

	if h.Metrics != nil {
		if result.Success {
			h.Metrics.RecordPayout("accepted")
		} else {
			h.Metrics.RecordPayout("rejected")
		}
	}
	writeJSON(w, http.StatusOK, result)
}

// GetPayoutCeiling returns the INR withdrawal ceiling for one account.
func (h *Handler) GetPayoutCeiling(w http.ResponseWriter, r *http.Request) {
	accountNo, err := strconv.ParseInt(chi.URLParam(r, "accountNo"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account number")
		return
	}

	ceiling, err := h.Payout.MaxWithdrawINR(r.Context(), accountNo)
	if err != nil {
		logger.ErrorWithErr(r.Context(), "Payout ceiling lookup failed", err, "account", accountNo)
		writeError(w, http.StatusBadGateway, "failed to compute withdrawal ceiling")
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"maxWithdrawInr": ceiling})
}

// ListIBRequests renders the admin back-office IB application list.
func (h *Handler) ListIBRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Backend.IBRequests(r.Context())
	if err != nil {
		logger.ErrorWithErr(r.Context(), "IB request list failed", err)
		writeError(w, http.StatusBadGateway, "failed to fetch IB requests")
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// ApproveIBRequest approves one IB application.
func (h *Handler) ApproveIBRequest(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	message, err := h.Backend.ApproveIB(r.Context(), email)
	if err != nil {
		logger.ErrorWithErr(r.Context(), "IB approval failed", err, "email", email)
		writeError(w, http.StatusBadGateway, "failed to approve IB request")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

// RejectIBRequest rejects one IB application.
func (h *Handler) RejectIBRequest(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	message, err := h.Backend.RejectIB(r.Context(), email)
	if err != nil {
		logger.ErrorWithErr(r.Context(), "IB rejection failed", err, "email", email)
		writeError(w, http.StatusBadGateway, "failed to reject IB request")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

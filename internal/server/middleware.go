package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ib-partner-service/internal/logger"
	"ib-partner-service/internal/session"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	claimsKey    contextKey = "claims"
)

// RequestID tags every request with a UUID, echoed in the X-Request-Id
// header and attached to log lines.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFrom returns the request ID attached by RequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// JWTAuth verifies the bearer token and stores its claims in the context.
// Validated tokens are cached in the session provider until they expire.
func (h *Handler) JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authorization header required")
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		var claims *Claims
		if creds, ok := h.Sessions.Get(token); ok && !creds.Expired(time.Now()) {
			claims = &Claims{Email: creds.Email, Admin: creds.Admin}
		} else {
			parsed, err := h.Auth.ValidateToken(token)
			if err != nil {
				h.Sessions.Clear(token)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			claims = parsed

			creds := session.Credentials{Email: parsed.Email, Token: token, Admin: parsed.Admin}
			if parsed.ExpiresAt != nil {
				creds.ExpiresAt = parsed.ExpiresAt.Time
			}
			h.Sessions.Set(token, creds)
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSelfOrAdmin only lets a partner at their own {email} routes; admins
// pass everywhere.
func (h *Handler) RequireSelfOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(claimsKey).(*Claims)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		email := chi.URLParam(r, "email")
		if !claims.Admin && claims.Email != email {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates the back-office routes.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(claimsKey).(*Claims)
		if !ok || !claims.Admin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CountRequests records per-route request counts after serving.
func (h *Handler) CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if h.Metrics != nil {
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			h.Metrics.RecordHTTPRequest(route, strconv.Itoa(rec.status/100*100))
		}
		logger.Debug(r.Context(), "Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", RequestIDFrom(r.Context()),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

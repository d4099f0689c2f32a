package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"kidventure/internal/models"
	"kidventure/internal/security"
	"kidventure/internal/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionContextKey ContextKey = "session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	sessions *session.Manager
	limiter  *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessions *session.Manager, limiter *security.RateLimiter) *Middleware {
	return &Middleware{sessions: sessions, limiter: limiter}
}

// RequireSession verifies the bearer token and puts its claims on the
// request context
func (m *Middleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.verify(w, r)
		if !ok {
			return
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole verifies the session and additionally checks its role
func (m *Middleware) RequireRole(role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := m.verify(w, r)
		if !ok {
			return
		}
		if claims.Role != role {
			respondWithError(w, http.StatusForbidden, "Not allowed for this role", "", nil)
			return
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) verify(w http.ResponseWriter, r *http.Request) (*session.Claims, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		respondWithError(w, http.StatusUnauthorized, "Missing session token", "", nil)
		return nil, false
	}
	claims, err := m.sessions.Verify(strings.TrimPrefix(auth, "Bearer "))
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid session token", "session verification failed", err)
		return nil, false
	}
	return claims, true
}

// SessionFromContext returns the verified claims put there by the
// session middleware
func SessionFromContext(ctx context.Context) *session.Claims {
	claims, _ := ctx.Value(SessionContextKey).(*session.Claims)
	return claims
}

// RateLimit rejects clients that exceed the configured request rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.ClientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, slow down", "", nil)
			return
		}
		next(w, r)
	}
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Printf("%s %s %d %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

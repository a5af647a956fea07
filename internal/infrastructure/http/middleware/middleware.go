// Package middleware provides HTTP middleware components
// following the Chain of Responsibility pattern
package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	"github.com/pantrybook/pantrybook/internal/infrastructure/monitoring"
	"github.com/pantrybook/pantrybook/internal/infrastructure/security"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	claimsKey contextKey = "claims"
)

// Middleware provides all middleware functions
type Middleware struct {
	config   *config.Config
	logger   *zap.Logger
	auth     *security.AuthService
	limiters *clientLimiters
	metrics  *monitoring.Metrics
}

// New creates a new middleware instance
func New(cfg *config.Config, logger *zap.Logger, auth *security.AuthService, metrics *monitoring.Metrics) *Middleware {
	return &Middleware{
		config: cfg,
		logger: logger,
		auth:   auth,
		limiters: newClientLimiters(
			rate.Limit(cfg.RateLimit.RequestsPerMin)/60,
			cfg.RateLimit.BurstSize,
		),
		metrics: metrics,
	}
}

// clientLimiters hands out one token bucket per client IP. Entries are
// created lazily on first sight of an address.
type clientLimiters struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func newClientLimiters(limit rate.Limit, burst int) *clientLimiters {
	return &clientLimiters{
		clients: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
	}
}

func (c *clientLimiters) allow(addr string) bool {
	// RealIP has already rewritten RemoteAddr; strip the port when present
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	c.mu.Lock()
	limiter, ok := c.clients[addr]
	if !ok {
		limiter = rate.NewLimiter(c.limit, c.burst)
		c.clients[addr] = limiter
	}
	c.mu.Unlock()

	return limiter.Allow()
}

// Logger provides structured logging and metrics for requests
func (m *Middleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		m.metrics.RequestStarted()
		next.ServeHTTP(ww, r)
		m.metrics.RequestFinished()

		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			return
		}

		latency := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		path := r.URL.Path
		if raw := r.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", path),
			zap.String("ip", r.RemoteAddr),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("user_agent", r.UserAgent()),
		}
		if userID, ok := GetUserID(r.Context()); ok {
			fields = append(fields, zap.Uint("user_id", userID))
		}

		switch {
		case status >= 500:
			m.logger.Error("Server error", fields...)
		case status >= 400:
			m.logger.Warn("Client error", fields...)
		default:
			m.logger.Info("Request completed", fields...)
		}

		m.metrics.RecordRequest(r.Method, r.URL.Path, status, latency)
	})
}

// Security adds security headers
func (m *Middleware) Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if m.config.IsProduction() {
			w.Header().Set("Content-Security-Policy", "default-src 'none'")
		}

		next.ServeHTTP(w, r)
	})
}

// CORS handles Cross-Origin Resource Sharing
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.config.Server.EnableCORS {
			next.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")
		if origin != "" && m.isOriginAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit implements IP-agnostic request rate limiting
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.config.RateLimit.Enable {
			next.ServeHTTP(w, r)
			return
		}

		if !m.limiters.allow(r.RemoteAddr) {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, apperrors.NewAppError(
				apperrors.CodeTooManyRequests, "Rate limit exceeded", ""))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// JSONOnly rejects mutating requests whose body is not JSON. Multipart
// uploads are exempt so the image endpoint keeps working.
func (m *Middleware) JSONOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			next.ServeHTTP(w, r)
			return
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" ||
			strings.HasPrefix(contentType, "application/json") ||
			strings.HasPrefix(contentType, "multipart/form-data") {
			next.ServeHTTP(w, r)
			return
		}

		writeError(w, r, apperrors.NewAppError(
			apperrors.CodeBadRequest,
			"Unsupported content type",
			"request bodies must be application/json",
		))
	})
}

// Authenticate requires a valid bearer token and stores the caller's
// identity in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := security.ExtractBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, r, apperrors.NewUnauthorizedError(""))
			return
		}

		claims, err := m.auth.ValidateToken(r.Context(), token)
		if err != nil {
			writeError(w, r, apperrors.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the authenticated user's id from the context
func GetUserID(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(userIDKey).(uint)
	return userID, ok
}

// GetClaims returns the token claims from the context
func GetClaims(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.Claims)
	return claims, ok
}

func (m *Middleware) isOriginAllowed(origin string) bool {
	if m.config.IsDevelopment() {
		return true
	}
	for _, allowed := range m.config.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, r *http.Request, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())

	body := apperrors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context()))
	_ = json.NewEncoder(w).Encode(body)
}

// Package handlers provides the HTTP handlers for the JSON API
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError converts any error into a JSON error response
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := apperrors.Wrap(err, "request failed")

	if appErr.StatusCode() >= 500 {
		logger.Error("Handler error",
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(appErr),
		)
	}

	body := apperrors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context()))
	writeJSON(w, appErr.StatusCode(), body)
}

// decodeJSON decodes a request body. Unknown keys are ignored, matching
// the tolerant-reader posture of the API: clients may send fields the
// server does not care about.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body")
	}
	return nil
}

// parseIDParam parses a numeric URL parameter
func parseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid id in URL")
	}
	return uint(id), nil
}

// parseIDList parses a comma-separated id list query parameter. An absent
// or empty parameter yields nil, meaning the filter is not applied.
func parseIDList(r *http.Request, name string) ([]uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, apperrors.NewValidationError(
				name + " must be a comma-separated list of ids")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// validationError converts validator errors into an API validation error
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(err.Error())
	}

	fields := make([]apperrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: fe.Error(),
		})
	}
	return apperrors.NewValidationErrors(fields)
}

// HealthHandler serves liveness checks
type HealthHandler struct {
	config *config.Config
	db     *gorm.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{config: cfg, db: db, logger: logger}
}

// Health reports service and database status
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "up"

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
		status = "degraded"
		dbStatus = "down"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":   status,
		"version":  h.config.App.Version,
		"database": dbStatus,
	})
}

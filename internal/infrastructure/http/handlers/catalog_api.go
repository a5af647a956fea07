package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pantrybook/pantrybook/internal/infrastructure/http/middleware"
	"github.com/pantrybook/pantrybook/internal/ports/inbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"go.uber.org/zap"
)

// CatalogHandler handles tag and ingredient endpoints. The two resources
// share shape and semantics, so they share a handler.
type CatalogHandler struct {
	service  inbound.RecipeService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service inbound.RecipeService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.Named("catalog-handler"),
	}
}

type renameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ListTags handles GET /api/v1/tags
func (h *CatalogHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	tags, err := h.service.ListTags(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tags)
}

// UpdateTag handles PATCH /api/v1/tags/{id}
func (h *CatalogHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	tagID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req renameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, validationError(err))
		return
	}

	dto, err := h.service.UpdateTag(r.Context(), userID, tagID, req.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// DeleteTag handles DELETE /api/v1/tags/{id}
func (h *CatalogHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	tagID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteTag(r.Context(), userID, tagID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListIngredients handles GET /api/v1/ingredients
func (h *CatalogHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	ingredients, err := h.service.ListIngredients(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, ingredients)
}

// UpdateIngredient handles PATCH /api/v1/ingredients/{id}
func (h *CatalogHandler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	ingredientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req renameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, validationError(err))
		return
	}

	dto, err := h.service.UpdateIngredient(r.Context(), userID, ingredientID, req.Name)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// DeleteIngredient handles DELETE /api/v1/ingredients/{id}
func (h *CatalogHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	ingredientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteIngredient(r.Context(), userID, ingredientID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

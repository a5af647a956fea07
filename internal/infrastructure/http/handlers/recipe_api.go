package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pantrybook/pantrybook/internal/infrastructure/http/middleware"
	"github.com/pantrybook/pantrybook/internal/ports/inbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"go.uber.org/zap"
)

// RecipeHandler handles recipe endpoints
type RecipeHandler struct {
	service   inbound.RecipeService
	validate  *validator.Validate
	logger    *zap.Logger
	maxUpload int64
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(service inbound.RecipeService, maxUpload int64, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		service:   service,
		validate:  validator.New(),
		logger:    logger.Named("recipe-handler"),
		maxUpload: maxUpload,
	}
}

// decimalString accepts a JSON string or bare number for decimal fields
type decimalString string

func (d *decimalString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = decimalString(s)
		return nil
	}
	*d = decimalString(data)
	return nil
}

type namedItemRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type createRecipeRequest struct {
	Title       string             `json:"title" validate:"required,max=255"`
	TimeMinutes int                `json:"time_minutes" validate:"gte=0"`
	Price       decimalString      `json:"price" validate:"required"`
	Description string             `json:"description"`
	Link        string             `json:"link" validate:"max=255"`
	Tags        []namedItemRequest `json:"tags" validate:"dive"`
	Ingredients []namedItemRequest `json:"ingredients" validate:"dive"`
}

// updateRecipeRequest distinguishes absent keys from zero values through
// pointer fields. An absent key leaves the attribute alone; tags: [] and
// ingredients: [] detach everything.
type updateRecipeRequest struct {
	Title       *string             `json:"title" validate:"omitempty,max=255"`
	TimeMinutes *int                `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *decimalString      `json:"price"`
	Description *string             `json:"description"`
	Link        *string             `json:"link" validate:"omitempty,max=255"`
	Tags        *[]namedItemRequest `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]namedItemRequest `json:"ingredients" validate:"omitempty,dive"`
}

// List handles GET /api/v1/recipes. The tags and ingredients query
// parameters take comma-separated id lists and narrow the result to
// recipes carrying any of the listed items.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	tagIDs, err := parseIDList(r, "tags")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ingredientIDs, err := parseIDList(r, "ingredients")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	recipes, err := h.service.ListRecipes(r.Context(), userID, inbound.ListRecipesQuery{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}

// Create handles POST /api/v1/recipes
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	var req createRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, validationError(err))
		return
	}

	dto, err := h.service.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       string(req.Price),
		Description: req.Description,
		Link:        req.Link,
		Tags:        toNamedItems(req.Tags),
		Ingredients: toNamedItems(req.Ingredients),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto)
}

// Get handles GET /api/v1/recipes/{id}
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.service.GetRecipeByID(r.Context(), userID, recipeID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// Replace handles PUT /api/v1/recipes/{id}. Title, time_minutes and
// price are mandatory; other attributes keep their current value when the
// key is absent.
func (h *RecipeHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

// Patch handles PATCH /api/v1/recipes/{id}
func (h *RecipeHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

func (h *RecipeHandler) update(w http.ResponseWriter, r *http.Request, full bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req updateRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, h.logger, validationError(err))
		return
	}
	if full && (req.Title == nil || req.TimeMinutes == nil || req.Price == nil) {
		writeError(w, r, h.logger,
			apperrors.NewValidationError("title, time_minutes and price are required"))
		return
	}

	cmd := inbound.UpdateRecipeCommand{
		RecipeID:    recipeID,
		UserID:      userID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Description: req.Description,
		Link:        req.Link,
	}
	if req.Price != nil {
		price := string(*req.Price)
		cmd.Price = &price
	}
	if req.Tags != nil {
		items := toNamedItems(*req.Tags)
		cmd.Tags = &items
	}
	if req.Ingredients != nil {
		items := toNamedItems(*req.Ingredients)
		cmd.Ingredients = &items
	}

	dto, err := h.service.UpdateRecipe(r.Context(), cmd)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// Delete handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteRecipe(r.Context(), userID, recipeID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/v1/recipes/{id}/upload-image. The image
// arrives as the "image" part of a multipart form.
func (h *RecipeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, r, h.logger, apperrors.NewUnauthorizedError(""))
		return
	}

	recipeID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, r, h.logger,
			apperrors.NewValidationError("expected a multipart form with an image field"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, h.logger,
			apperrors.NewValidationError("no image submitted"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		writeError(w, r, h.logger, apperrors.NewValidationError("failed to read upload"))
		return
	}

	dto, err := h.service.UploadRecipeImage(r.Context(), inbound.UploadImageCommand{
		RecipeID:    recipeID,
		UserID:      userID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

func toNamedItems(items []namedItemRequest) []inbound.NamedItemCommand {
	cmds := make([]inbound.NamedItemCommand, 0, len(items))
	for _, item := range items {
		cmds = append(cmds, inbound.NamedItemCommand{Name: item.Name})
	}
	return cmds
}

// Package recipe provides the application layer for recipe management
package recipe

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pantrybook/pantrybook/internal/domain/recipe"
	"github.com/pantrybook/pantrybook/internal/infrastructure/config"
	"github.com/pantrybook/pantrybook/internal/ports/inbound"
	"github.com/pantrybook/pantrybook/internal/ports/outbound"
	apperrors "github.com/pantrybook/pantrybook/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the inbound.RecipeService interface
type Service struct {
	recipeRepo     outbound.RecipeRepository
	tagRepo        outbound.TagRepository
	ingredientRepo outbound.IngredientRepository
	storage        outbound.StorageService
	config         *config.Config
	logger         *zap.Logger
}

// NewService creates a new recipe application service
func NewService(
	recipeRepo outbound.RecipeRepository,
	tagRepo outbound.TagRepository,
	ingredientRepo outbound.IngredientRepository,
	storage outbound.StorageService,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		storage:        storage,
		config:         cfg,
		logger:         logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a recipe for the calling user, resolving nested tags
// and ingredients by name within the same transaction as the recipe row.
func (s *Service) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	price, err := recipe.ParsePrice(cmd.Price)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	entity, err := recipe.NewRecipe(cmd.UserID, cmd.Title, cmd.TimeMinutes, price)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	entity.UpdateDescription(cmd.Description)
	if err := entity.UpdateLink(cmd.Link); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	tags, err := buildTags(cmd.UserID, cmd.Tags)
	if err != nil {
		return nil, err
	}
	entity.SetTags(tags)

	ingredients, err := buildIngredients(cmd.UserID, cmd.Ingredients)
	if err != nil {
		return nil, err
	}
	entity.SetIngredients(ingredients)

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, apperrors.Wrap(err, "failed to save recipe")
	}

	s.logger.Info("Recipe created",
		zap.Uint("recipe_id", entity.ID()),
		zap.Uint("user_id", cmd.UserID),
	)

	dto := toDetailDTO(entity)
	return &dto, nil
}

// UpdateRecipe applies a partial or full update to an owned recipe.
// Nil command fields are left untouched; a non-nil empty tag or ingredient
// slice detaches everything.
func (s *Service) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, cmd.UserID, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		if err := entity.UpdateTitle(*cmd.Title); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.TimeMinutes != nil {
		if err := entity.UpdateTimeMinutes(*cmd.TimeMinutes); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.Price != nil {
		price, err := recipe.ParsePrice(*cmd.Price)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		entity.UpdatePrice(price)
	}
	if cmd.Description != nil {
		entity.UpdateDescription(*cmd.Description)
	}
	if cmd.Link != nil {
		if err := entity.UpdateLink(*cmd.Link); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if cmd.Tags != nil {
		tags, err := buildTags(cmd.UserID, *cmd.Tags)
		if err != nil {
			return nil, err
		}
		entity.SetTags(tags)
	}
	if cmd.Ingredients != nil {
		ingredients, err := buildIngredients(cmd.UserID, *cmd.Ingredients)
		if err != nil {
			return nil, err
		}
		entity.SetIngredients(ingredients)
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, apperrors.Wrap(err, "failed to update recipe")
	}

	s.logger.Info("Recipe updated", zap.Uint("recipe_id", entity.ID()))

	dto := toDetailDTO(entity)
	return &dto, nil
}

// DeleteRecipe removes an owned recipe
func (s *Service) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	if err := s.recipeRepo.Delete(ctx, userID, recipeID); err != nil {
		return err
	}
	s.logger.Info("Recipe deleted",
		zap.Uint("recipe_id", recipeID),
		zap.Uint("user_id", userID),
	)
	return nil
}

// UploadRecipeImage validates and stores an image for an owned recipe,
// then records the stored path on the recipe.
func (s *Service) UploadRecipeImage(ctx context.Context, cmd inbound.UploadImageCommand) (*inbound.RecipeDTO, error) {
	if len(cmd.Data) == 0 {
		return nil, apperrors.NewValidationError("uploaded file is empty")
	}
	if max := s.config.Storage.MaxFileSize; max > 0 && int64(len(cmd.Data)) > max {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("uploaded file exceeds the %d byte limit", max))
	}

	contentType := detectImageType(cmd.Data)
	if !s.isAllowedImageType(contentType) {
		return nil, apperrors.NewValidationError("upload a valid image")
	}

	entity, err := s.recipeRepo.FindByID(ctx, cmd.UserID, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recipe-%d-%s%s", entity.ID(), uuid.New().String(), imageExtension(contentType, cmd.Filename))
	path, err := s.storage.Upload(ctx, key, cmd.Data, contentType)
	if err != nil {
		return nil, apperrors.NewStorageError("upload image", err)
	}

	entity.SetImage(path)
	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, apperrors.Wrap(err, "failed to record image path")
	}

	s.logger.Info("Recipe image uploaded",
		zap.Uint("recipe_id", entity.ID()),
		zap.String("path", path),
	)

	dto := toDetailDTO(entity)
	return &dto, nil
}

// GetRecipeByID returns the detail view of an owned recipe
func (s *Service) GetRecipeByID(ctx context.Context, userID, recipeID uint) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	dto := toDetailDTO(entity)
	return &dto, nil
}

// ListRecipes returns the caller's recipes, newest first, optionally
// restricted to recipes carrying any of the given tag or ingredient ids.
func (s *Service) ListRecipes(ctx context.Context, userID uint, query inbound.ListRecipesQuery) ([]inbound.RecipeSummaryDTO, error) {
	entities, err := s.recipeRepo.FindByUser(ctx, userID, outbound.RecipeFilter{
		TagIDs:        query.TagIDs,
		IngredientIDs: query.IngredientIDs,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recipes")
	}

	summaries := make([]inbound.RecipeSummaryDTO, 0, len(entities))
	for _, entity := range entities {
		summaries = append(summaries, toSummaryDTO(entity))
	}
	return summaries, nil
}

// ListTags returns the caller's tags ordered by descending name
func (s *Service) ListTags(ctx context.Context, userID uint) ([]inbound.TagDTO, error) {
	tags, err := s.tagRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list tags")
	}

	dtos := make([]inbound.TagDTO, 0, len(tags))
	for _, tag := range tags {
		dtos = append(dtos, inbound.TagDTO{ID: tag.ID(), Name: tag.Name()})
	}
	return dtos, nil
}

// UpdateTag renames an owned tag
func (s *Service) UpdateTag(ctx context.Context, userID, tagID uint, name string) (*inbound.TagDTO, error) {
	tag, err := s.tagRepo.FindByID(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	if err := tag.Rename(name); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, apperrors.Wrap(err, "failed to update tag")
	}

	return &inbound.TagDTO{ID: tag.ID(), Name: tag.Name()}, nil
}

// DeleteTag removes an owned tag and detaches it from recipes
func (s *Service) DeleteTag(ctx context.Context, userID, tagID uint) error {
	return s.tagRepo.Delete(ctx, userID, tagID)
}

// ListIngredients returns the caller's ingredients ordered by descending name
func (s *Service) ListIngredients(ctx context.Context, userID uint) ([]inbound.IngredientDTO, error) {
	ingredients, err := s.ingredientRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list ingredients")
	}

	dtos := make([]inbound.IngredientDTO, 0, len(ingredients))
	for _, ingredient := range ingredients {
		dtos = append(dtos, inbound.IngredientDTO{ID: ingredient.ID(), Name: ingredient.Name()})
	}
	return dtos, nil
}

// UpdateIngredient renames an owned ingredient
func (s *Service) UpdateIngredient(ctx context.Context, userID, ingredientID uint, name string) (*inbound.IngredientDTO, error) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, userID, ingredientID)
	if err != nil {
		return nil, err
	}

	if err := ingredient.Rename(name); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.ingredientRepo.Update(ctx, ingredient); err != nil {
		return nil, apperrors.Wrap(err, "failed to update ingredient")
	}

	return &inbound.IngredientDTO{ID: ingredient.ID(), Name: ingredient.Name()}, nil
}

// DeleteIngredient removes an owned ingredient and detaches it from recipes
func (s *Service) DeleteIngredient(ctx context.Context, userID, ingredientID uint) error {
	return s.ingredientRepo.Delete(ctx, userID, ingredientID)
}

func (s *Service) isAllowedImageType(contentType string) bool {
	if !strings.HasPrefix(contentType, "image/") {
		return false
	}
	allowed := s.config.Storage.AllowedTypes
	if len(allowed) == 0 {
		return true
	}
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}

// detectImageType sniffs the content type from the payload itself rather
// than trusting the multipart headers.
func detectImageType(data []byte) string {
	return http.DetectContentType(data)
}

func imageExtension(contentType, filename string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return ".bin"
}

func buildTags(userID uint, items []inbound.NamedItemCommand) ([]recipe.Tag, error) {
	tags := make([]recipe.Tag, 0, len(items))
	for _, item := range items {
		tag, err := recipe.NewTag(userID, item.Name)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func buildIngredients(userID uint, items []inbound.NamedItemCommand) ([]recipe.Ingredient, error) {
	ingredients := make([]recipe.Ingredient, 0, len(items))
	for _, item := range items {
		ingredient, err := recipe.NewIngredient(userID, item.Name)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}

func toSummaryDTO(entity *recipe.Recipe) inbound.RecipeSummaryDTO {
	return inbound.RecipeSummaryDTO{
		ID:          entity.ID(),
		Title:       entity.Title(),
		TimeMinutes: entity.TimeMinutes(),
		Price:       entity.Price().String(),
		Link:        entity.Link(),
		Tags:        toTagDTOs(entity.Tags()),
		Ingredients: toIngredientDTOs(entity.Ingredients()),
	}
}

func toDetailDTO(entity *recipe.Recipe) inbound.RecipeDTO {
	return inbound.RecipeDTO{
		ID:          entity.ID(),
		Title:       entity.Title(),
		TimeMinutes: entity.TimeMinutes(),
		Price:       entity.Price().String(),
		Link:        entity.Link(),
		Tags:        toTagDTOs(entity.Tags()),
		Ingredients: toIngredientDTOs(entity.Ingredients()),
		Description: entity.Description(),
		Image:       entity.Image(),
	}
}

func toTagDTOs(tags []recipe.Tag) []inbound.TagDTO {
	dtos := make([]inbound.TagDTO, 0, len(tags))
	for _, tag := range tags {
		dtos = append(dtos, inbound.TagDTO{ID: tag.ID(), Name: tag.Name()})
	}
	return dtos
}

func toIngredientDTOs(ingredients []recipe.Ingredient) []inbound.IngredientDTO {
	dtos := make([]inbound.IngredientDTO, 0, len(ingredients))
	for _, ingredient := range ingredients {
		dtos = append(dtos, inbound.IngredientDTO{ID: ingredient.ID(), Name: ingredient.Name()})
	}
	return dtos
}

package recipe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipe-book/domain"
	"recipe-book/entities"
	"recipe-book/internal/logging"
	"recipe-book/internal/metrics"
)

const defaultTimeMinutes = 1

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error)
		GetRecipeDetail(ctx context.Context, recipeID uint) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, query domain.RecipeListQuery) (domain.RecipeListResponse, error)
		GetRecipesByIDs(ctx context.Context, ids []uint) ([]domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID uint, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID uint, userID string, role string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		pageSize         int
	}
)

func NewRecipeService(recipeRepository RecipeRepository, pageSize int) RecipeService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &recipeService{
		recipeRepository: recipeRepository,
		pageSize:         pageSize,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	names, err := normalizeIngredientNames(req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	timeMinutes := defaultTimeMinutes
	if req.TimeMinutes != nil {
		timeMinutes = *req.TimeMinutes
	}

	recipe := &entities.Recipe{
		UserID:       owner,
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		PreviewImage: req.PreviewImage,
		TimeMinutes:  timeMinutes,
		Category:     entities.RecipeCategory(req.Category),
	}
	if err := checkRecipe(recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	err = s.recipeRepository.CreateRecipe(ctx, recipe, names)
	metrics.RecipeOperations.WithLabelValues("create", metrics.Outcome(err)).Inc()
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	logging.Info().Uint("recipe_id", recipe.ID).Str("user_id", userID).Int("ingredients", len(names)).Msg("recipe created")

	return s.GetRecipeDetail(ctx, recipe.ID)
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID uint) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, query domain.RecipeListQuery) (domain.RecipeListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := s.pageSize
	// keeps (page-1)*limit from overflowing into a negative offset
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	orderBy, desc := ParseOrdering(query.Ordering)

	category := strings.TrimSpace(query.Category)
	if category != "" && !entities.RecipeCategory(category).Valid() {
		return domain.RecipeListResponse{}, domain.FieldErrors{
			"category": fmt.Sprintf("%q is not a valid choice", category),
		}
	}

	recipes, total, err := s.recipeRepository.GetRecipes(ctx, RecipeFilter{
		Search:   query.Search,
		Category: category,
		OrderBy:  orderBy,
		Desc:     desc,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	res := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, toRecipeResponse(recipe))
	}

	return domain.RecipeListResponse{
		Recipes:    res,
		Pagination: domain.NewPagination(page, limit, total),
	}, nil
}

// GetRecipesByIDs returns the recipes that still exist; missing ids are skipped.
func (s *recipeService) GetRecipesByIDs(ctx context.Context, ids []uint) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, toRecipeResponse(recipe))
	}
	return res, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID uint, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	if recipe.UserID.String() != userID {
		return domain.RecipeDetail{}, domain.ErrUnauthorizedRecipeAccess
	}

	var names []string
	if req.Ingredients != nil {
		names, err = normalizeIngredientNames(req.Ingredients)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
	}

	if req.Name != nil {
		recipe.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.PreviewImage != nil {
		recipe.PreviewImage = *req.PreviewImage
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Category != nil {
		recipe.Category = entities.RecipeCategory(*req.Category)
	}
	if err := checkRecipe(recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	err = s.recipeRepository.UpdateRecipe(ctx, recipe, names)
	metrics.RecipeOperations.WithLabelValues("update", metrics.Outcome(err)).Inc()
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID uint, userID string, role string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.UserID.String() != userID && role != entities.RoleAdmin {
		return domain.ErrUnauthorizedRecipeAccess
	}

	err = s.recipeRepository.DeleteRecipe(ctx, recipeID)
	metrics.RecipeOperations.WithLabelValues("delete", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}

	logging.Info().Uint("recipe_id", recipeID).Str("user_id", userID).Str("role", role).Msg("recipe deleted")
	return nil
}

// ParseOrdering maps an ordering query value to a column key and direction.
// Unknown values fall back to newest first.
func ParseOrdering(ordering string) (string, bool) {
	ordering = strings.TrimSpace(ordering)
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	switch field {
	case domain.OrderingCreatedAt, domain.OrderingTimeMinutes, domain.OrderingUserUsername:
		return field, desc
	default:
		return domain.OrderingCreatedAt, true
	}
}

// normalizeIngredientNames trims every name and drops exact duplicates, keeping
// the first occurrence. Matching is case-sensitive.
func normalizeIngredientNames(ingredients []domain.RecipeIngredientRequest) ([]string, error) {
	names := make([]string, 0, len(ingredients))
	seen := make(map[string]struct{}, len(ingredients))
	fieldErrors := domain.FieldErrors{}

	for i, ingredient := range ingredients {
		name := strings.TrimSpace(ingredient.Name)
		if name == "" {
			fieldErrors[fmt.Sprintf("ingredients[%d].name", i)] = "this field may not be blank"
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	if len(fieldErrors) > 0 {
		return nil, fieldErrors
	}
	return names, nil
}

func checkRecipe(recipe *entities.Recipe) error {
	fieldErrors := domain.FieldErrors{}
	if recipe.Name == "" {
		fieldErrors["name"] = "this field may not be blank"
	}
	if recipe.TimeMinutes < 1 {
		fieldErrors["time_minutes"] = "ensure this value is greater than or equal to 1"
	}
	if !recipe.Category.Valid() {
		fieldErrors["category"] = fmt.Sprintf("%q is not a valid choice", string(recipe.Category))
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

func toRecipeResponse(recipe *entities.Recipe) domain.Recipe {
	res := domain.Recipe{
		ID:            recipe.ID,
		Name:          recipe.Name,
		PreviewImage:  recipe.PreviewImage,
		CreatedAt:     recipe.CreatedAt,
		TimeMinutes:   recipe.TimeMinutes,
		Category:      string(recipe.Category),
		CategoryLabel: recipe.CategoryLabel(),
		Ingredients:   make([]domain.RecipeIngredient, 0, len(recipe.Ingredients)),
	}

	if recipe.User != nil {
		res.User = domain.UserShort{
			ID:       recipe.User.ID.String(),
			Username: recipe.User.Username,
			Email:    recipe.User.Email,
		}
	} else {
		res.User = domain.UserShort{ID: recipe.UserID.String()}
	}

	for _, ingredient := range recipe.Ingredients {
		res.Ingredients = append(res.Ingredients, domain.RecipeIngredient{
			ID:   ingredient.ID,
			Name: ingredient.Name,
		})
	}
	return res
}

func toRecipeDetail(recipe *entities.Recipe) domain.RecipeDetail {
	return domain.RecipeDetail{
		Recipe:      toRecipeResponse(recipe),
		Description: recipe.Description,
	}
}

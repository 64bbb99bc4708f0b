package ingredient

import (
	"context"
	"strings"

	"recipe-book/domain"
	"recipe-book/entities"
	"recipe-book/internal/metrics"
)

type (
	IngredientService interface {
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.Ingredient, error)
		GetIngredients(ctx context.Context) ([]domain.Ingredient, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
	}
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.Ingredient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Ingredient{}, domain.FieldErrors{"name": "this field may not be blank"}
	}

	ingredient := &entities.Ingredient{
		Name:          name,
		CaloriesCount: req.CaloriesCount,
		Description:   req.Description,
	}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.Ingredient{}, err
	}
	metrics.IngredientsCreated.Inc()

	return toIngredientResponse(ingredient), nil
}

func (s *ingredientService) GetIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		res = append(res, toIngredientResponse(ingredient))
	}
	return res, nil
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:            ingredient.ID,
		Name:          ingredient.Name,
		CaloriesCount: ingredient.CaloriesCount,
		Description:   ingredient.Description,
	}
}

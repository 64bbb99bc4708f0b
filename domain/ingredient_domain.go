package domain

import "errors"

var (
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessCreateIngredient = "ingredient created successfully"

	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedCreateIngredient = "failed to create ingredient"

	ErrIngredientExists = errors.New("ingredient with this name already exists")
)

type (
	CreateIngredientRequest struct {
		Name          string  `json:"name" validate:"notblank,max=255"`
		CaloriesCount *string `json:"calories_count" validate:"omitnil,max=5,numeric"`
		Description   *string `json:"description"`
	}

	Ingredient struct {
		ID            uint    `json:"id"`
		Name          string  `json:"name"`
		CaloriesCount *string `json:"calories_count"`
		Description   *string `json:"description"`
	}
)

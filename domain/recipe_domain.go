package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
)

const (
	OrderingCreatedAt    = "created_at"
	OrderingTimeMinutes  = "time_minutes"
	OrderingUserUsername = "user_username"
)

type (
	RecipeIngredientRequest struct {
		Name string `json:"name" validate:"notblank,max=255"`
	}

	CreateRecipeRequest struct {
		Name         string                    `json:"name" validate:"notblank,max=255"`
		Description  string                    `json:"description"`
		PreviewImage string                    `json:"preview_image" validate:"max=255"`
		TimeMinutes  *int                      `json:"time_minutes" validate:"omitnil,min=1"`
		Category     string                    `json:"category" validate:"required,category"`
		Ingredients  []RecipeIngredientRequest `json:"ingredients" validate:"required,dive"`
	}

	// UpdateRecipeRequest carries a field subset; nil means "leave unchanged".
	// A non-nil Ingredients slice replaces the whole association set.
	UpdateRecipeRequest struct {
		Name         *string                   `json:"name" validate:"omitnil,notblank,max=255"`
		Description  *string                   `json:"description"`
		PreviewImage *string                   `json:"preview_image" validate:"omitnil,max=255"`
		TimeMinutes  *int                      `json:"time_minutes" validate:"omitnil,min=1"`
		Category     *string                   `json:"category" validate:"omitnil,category"`
		Ingredients  []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
	}

	RecipeListQuery struct {
		Search   string
		Ordering string
		Category string
		Page     int
		Limit    int
	}

	UserShort struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	RecipeIngredient struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}

	Recipe struct {
		ID            uint               `json:"id"`
		Name          string             `json:"name"`
		PreviewImage  string             `json:"preview_image"`
		CreatedAt     time.Time          `json:"created_at"`
		TimeMinutes   int                `json:"time_minutes"`
		Category      string             `json:"category"`
		CategoryLabel string             `json:"category_label"`
		User          UserShort          `json:"user"`
		Ingredients   []RecipeIngredient `json:"ingredients"`
	}

	RecipeDetail struct {
		Recipe
		Description string `json:"description"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe   `json:"recipes"`
		Pagination Pagination `json:"pagination"`
	}
)

// AsUpdate turns a full replacement payload into an update that touches every writable field.
func (r CreateRecipeRequest) AsUpdate() UpdateRecipeRequest {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []RecipeIngredientRequest{}
	}
	return UpdateRecipeRequest{
		Name:         &r.Name,
		Description:  &r.Description,
		PreviewImage: &r.PreviewImage,
		TimeMinutes:  r.TimeMinutes,
		Category:     &r.Category,
		Ingredients:  ingredients,
	}
}

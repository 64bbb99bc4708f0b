package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-book/domain"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestValidateStruct_CreateRecipeRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        domain.CreateRecipeRequest
		wantFields []string
	}{
		{
			name: "valid",
			req: domain.CreateRecipeRequest{
				Name:        "Omelette",
				TimeMinutes: intPtr(10),
				Category:    "B",
				Ingredients: []domain.RecipeIngredientRequest{{Name: "Egg"}},
			},
		},
		{
			name: "time omitted uses default later",
			req: domain.CreateRecipeRequest{
				Name:        "Tea",
				Category:    "S",
				Ingredients: []domain.RecipeIngredientRequest{},
			},
		},
		{
			name: "blank name and zero minutes",
			req: domain.CreateRecipeRequest{
				Name:        "   ",
				TimeMinutes: intPtr(0),
				Category:    "D",
				Ingredients: []domain.RecipeIngredientRequest{},
			},
			wantFields: []string{"name", "time_minutes"},
		},
		{
			name: "unknown category",
			req: domain.CreateRecipeRequest{
				Name:        "Soup",
				Category:    "X",
				Ingredients: []domain.RecipeIngredientRequest{},
			},
			wantFields: []string{"category"},
		},
		{
			name: "missing ingredients list",
			req: domain.CreateRecipeRequest{
				Name:     "Soup",
				Category: "D",
			},
			wantFields: []string{"ingredients"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var fieldErrors domain.FieldErrors
			require.True(t, errors.As(err, &fieldErrors), "expected FieldErrors, got %v", err)
			for _, field := range tt.wantFields {
				assert.Contains(t, fieldErrors, field)
			}
			assert.Len(t, fieldErrors, len(tt.wantFields))
		})
	}
}

func TestValidateStruct_IngredientPath(t *testing.T) {
	req := domain.CreateRecipeRequest{
		Name:        "Omelette",
		Category:    "B",
		Ingredients: []domain.RecipeIngredientRequest{{Name: "Egg"}, {Name: ""}},
	}

	err := ValidateStruct(&req)

	var fieldErrors domain.FieldErrors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Equal(t, "this field may not be blank", fieldErrors["ingredients[1].name"])
}

func TestValidateStruct_UpdateRecipeRequest(t *testing.T) {
	assert.NoError(t, ValidateStruct(&domain.UpdateRecipeRequest{}))
	assert.NoError(t, ValidateStruct(&domain.UpdateRecipeRequest{Name: strPtr("Pancakes")}))

	err := ValidateStruct(&domain.UpdateRecipeRequest{TimeMinutes: intPtr(0), Category: strPtr("Q")})
	var fieldErrors domain.FieldErrors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Contains(t, fieldErrors, "time_minutes")
	assert.Equal(t, `"Q" is not a valid choice`, fieldErrors["category"])

	err = ValidateStruct(&domain.UpdateRecipeRequest{Name: strPtr("")})
	require.True(t, errors.As(err, &fieldErrors))
	assert.Contains(t, fieldErrors, "name")
}

func TestValidateStruct_RegisterRequest(t *testing.T) {
	err := ValidateStruct(&domain.RegisterRequest{
		Username:        "al",
		Email:           "not-an-email",
		Password:        "secret1",
		PasswordConfirm: "secret2",
	})

	var fieldErrors domain.FieldErrors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Equal(t, "ensure this field has at least 3 characters", fieldErrors["username"])
	assert.Equal(t, "enter a valid email address", fieldErrors["email"])
	assert.Equal(t, "passwords do not match", fieldErrors["password_confirm"])
}

func TestToFieldErrors_PassThrough(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, ToFieldErrors(plain))
}

//go:build integration

package recipe

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recipe-book/domain"
	"recipe-book/entities"
	"recipe-book/internal/testinfra"
	"recipe-book/pkg/ingredient"
)

type repoFixture struct {
	db          *gorm.DB
	recipes     RecipeRepository
	ingredients ingredient.IngredientRepository
}

func newRepoFixture(t *testing.T) repoFixture {
	db := testinfra.NewPostgres(t)
	ingredients := ingredient.NewIngredientRepository(db)
	return repoFixture{
		db:          db,
		recipes:     NewRecipeRepository(db, ingredients),
		ingredients: ingredients,
	}
}

func (f repoFixture) user(t *testing.T, username string) *entities.User {
	user := &entities.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f repoFixture) recipe(t *testing.T, owner *entities.User, name string, minutes int, ingredients ...string) *entities.Recipe {
	recipe := &entities.Recipe{
		UserID:      owner.ID,
		Name:        name,
		Description: name + " description",
		TimeMinutes: minutes,
		Category:    entities.CategoryDinner,
	}
	require.NoError(t, f.recipes.CreateRecipe(context.Background(), recipe, ingredients))
	return recipe
}

func entityIngredientNames(recipe *entities.Recipe) []string {
	names := make([]string, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		names = append(names, ingredient.Name)
	}
	return names
}

func TestRecipeRepository_CreateSharesIngredients(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	owner := f.user(t, "cook")

	first := f.recipe(t, owner, "Omelette", 10, "Egg", "Salt")
	second := f.recipe(t, owner, "Soup", 40, "Salt", "salt", "Water")

	got, err := f.recipes.GetRecipeByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Salt", "salt", "Water"}, entityIngredientNames(got))
	require.NotNil(t, got.User)
	assert.Equal(t, "cook", got.User.Username)

	firstGot, err := f.recipes.GetRecipeByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, firstGot.Ingredients[1].ID, got.Ingredients[0].ID)

	all, err := f.ingredients.GetIngredients(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestRecipeRepository_UpsertIsIdempotent(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()

	a, err := f.ingredients.UpsertByName(ctx, "Flour")
	require.NoError(t, err)
	b, err := f.ingredients.UpsertByName(ctx, "Flour")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	err = f.ingredients.CreateIngredient(ctx, &entities.Ingredient{Name: "Flour"})
	assert.ErrorIs(t, err, domain.ErrIngredientExists)
}

func TestRecipeRepository_GetRecipesFiltersAndOrders(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	zoe := f.user(t, "zoe")

	f.recipe(t, zoe, "Borscht", 90, "Beet")
	time.Sleep(10 * time.Millisecond)
	f.recipe(t, alice, "Pancakes", 20, "Flour")
	time.Sleep(10 * time.Millisecond)
	f.recipe(t, alice, "100% juice", 5, "Orange")

	recipes, total, err := f.recipes.GetRecipes(ctx, RecipeFilter{OrderBy: "created_at", Desc: true, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, recipes, 2)
	assert.Equal(t, "100% juice", recipes[0].Name)
	assert.Equal(t, "Pancakes", recipes[1].Name)

	recipes, _, err = f.recipes.GetRecipes(ctx, RecipeFilter{OrderBy: "created_at", Desc: true, Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Borscht", recipes[0].Name)

	recipes, _, err = f.recipes.GetRecipes(ctx, RecipeFilter{OrderBy: "time_minutes", Limit: 10})
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, []int{5, 20, 90}, []int{recipes[0].TimeMinutes, recipes[1].TimeMinutes, recipes[2].TimeMinutes})

	recipes, _, err = f.recipes.GetRecipes(ctx, RecipeFilter{OrderBy: "user_username", Desc: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "zoe", recipes[0].User.Username)

	recipes, total, err = f.recipes.GetRecipes(ctx, RecipeFilter{Search: "pancake", OrderBy: "created_at", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"Flour"}, entityIngredientNames(recipes[0]))

	_, total, err = f.recipes.GetRecipes(ctx, RecipeFilter{Search: "%", OrderBy: "created_at", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = f.recipes.GetRecipes(ctx, RecipeFilter{Category: string(entities.CategoryBreakfast), Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestRecipeRepository_UpdateReplacesIngredients(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	owner := f.user(t, "cook")
	created := f.recipe(t, owner, "Tea", 3, "Water", "Leaves")

	created.Name = "Green tea"
	require.NoError(t, f.recipes.UpdateRecipe(ctx, created, nil))

	got, err := f.recipes.GetRecipeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green tea", got.Name)
	assert.Equal(t, []string{"Water", "Leaves"}, entityIngredientNames(got))

	require.NoError(t, f.recipes.UpdateRecipe(ctx, got, []string{"Leaves", "Lemon"}))
	got, err = f.recipes.GetRecipeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Leaves", "Lemon"}, entityIngredientNames(got))

	require.NoError(t, f.recipes.UpdateRecipe(ctx, got, []string{}))
	got, err = f.recipes.GetRecipeByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Ingredients)
}

func TestRecipeRepository_DeleteKeepsIngredients(t *testing.T) {
	f := newRepoFixture(t)
	ctx := context.Background()
	owner := f.user(t, "cook")
	created := f.recipe(t, owner, "Toast", 5, "Bread")

	require.NoError(t, f.recipes.DeleteRecipe(ctx, created.ID))

	_, err := f.recipes.GetRecipeByID(ctx, created.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	all, err := f.ingredients.GetIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Bread", all[0].Name)

	byIDs, err := f.recipes.GetRecipesByIDs(ctx, []uint{created.ID})
	require.NoError(t, err)
	assert.Empty(t, byIDs)
}

func (f repoFixture) count(t *testing.T, table string) int64 {
	var n int64
	require.NoError(t, f.db.Table(table).Count(&n).Error)
	return n
}

func TestRecipeRepository_CreateRollsBackOnIngredientFailure(t *testing.T) {
	f := newRepoFixture(t)
	owner := f.user(t, "cook")

	recipe := &entities.Recipe{
		UserID:      owner.ID,
		Name:        "Doomed",
		TimeMinutes: 5,
		Category:    entities.CategoryBreakfast,
	}
	tooLong := strings.Repeat("x", 256)

	err := f.recipes.CreateRecipe(context.Background(), recipe, []string{"Egg", tooLong})
	require.Error(t, err)

	assert.Zero(t, f.count(t, "recipes"))
	assert.Zero(t, f.count(t, "recipe_ingredients"))
	assert.Zero(t, f.count(t, "ingredients"), "the ingredient inserted before the failure must be rolled back")
}

func TestIngredientRepository_ConcurrentUpsertSameName(t *testing.T) {
	f := newRepoFixture(t)

	const workers = 16
	ids := make([]uint, workers)
	errs := make([]error, workers)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			ingredient, err := f.ingredients.UpsertByName(context.Background(), "Saffron")
			errs[i] = err
			if err == nil {
				ids[i] = ingredient.ID
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		assert.NotZero(t, ids[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var n int64
	require.NoError(t, f.db.Model(&entities.Ingredient{}).Where("name = ?", "Saffron").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

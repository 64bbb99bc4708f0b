package recipe

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"recipe-book/entities"
	"recipe-book/pkg/ingredient"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredientNames []string) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredientNames []string) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter RecipeFilter) ([]*entities.Recipe, int64, error)
		GetRecipesByIDs(ctx context.Context, ids []uint) ([]*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, id uint) error
	}

	// RecipeFilter is a resolved list query. OrderBy is one of the ordering constants.
	RecipeFilter struct {
		Search   string
		Category string
		OrderBy  string
		Desc     bool
		Offset   int
		Limit    int
	}

	recipeRepository struct {
		db                   *gorm.DB
		ingredientRepository ingredient.IngredientRepository
	}
)

var orderColumns = map[string]string{
	"created_at":    "recipes.created_at",
	"time_minutes":  "recipes.time_minutes",
	"user_username": "users.username",
}

func NewRecipeRepository(db *gorm.DB, ingredientRepository ingredient.IngredientRepository) RecipeRepository {
	return &recipeRepository{
		db:                   db,
		ingredientRepository: ingredientRepository,
	}
}

// CreateRecipe inserts the recipe, resolves every ingredient name and writes the
// associations in one transaction.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredientNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredients, err := r.resolveIngredients(ctx, tx, ingredientNames)
		if err != nil {
			return err
		}

		recipe.User = nil
		recipe.Ingredients = ingredients
		if err := tx.Omit("User", "Ingredients.*").Create(recipe).Error; err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		return nil
	})
}

// UpdateRecipe writes the mutable columns. A nil ingredientNames keeps the current
// associations, anything else replaces them.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredientNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]any{
			"name":          recipe.Name,
			"description":   recipe.Description,
			"preview_image": recipe.PreviewImage,
			"time_minutes":  recipe.TimeMinutes,
			"category":      recipe.Category,
		}).Error
		if err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		if ingredientNames == nil {
			return nil
		}

		ingredients, err := r.resolveIngredients(ctx, tx, ingredientNames)
		if err != nil {
			return err
		}

		association := tx.Model(&entities.Recipe{ID: recipe.ID}).Association("Ingredients")
		if len(ingredients) == 0 {
			err = association.Clear()
		} else {
			err = association.Replace(ingredients)
		}
		if err != nil {
			return fmt.Errorf("replace recipe ingredients: %w", err)
		}
		recipe.Ingredients = ingredients
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Ingredients", orderIngredients).
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter RecipeFilter) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + escapeLike(search) + "%"
		query = query.Where(
			"(recipes.name ILIKE ? OR recipes.description ILIKE ? OR "+
				"to_tsvector(recipes.name || ' ' || recipes.description) @@ plainto_tsquery(?))",
			like, like, search,
		)
	}

	if filter.Category != "" {
		query = query.Where("recipes.category = ?", filter.Category)
	}

	query = query.Session(&gorm.Session{})

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	column, ok := orderColumns[filter.OrderBy]
	if !ok {
		column = orderColumns["created_at"]
	}
	direction := " asc"
	if filter.Desc {
		direction = " desc"
	}

	find := query.Select("recipes.*")
	if filter.OrderBy == "user_username" {
		find = find.Joins("JOIN users ON users.id = recipes.user_id")
	}

	if err := find.
		Preload("User").
		Preload("Ingredients", orderIngredients).
		Order(column + direction).
		Order("recipes.id" + direction).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipesByIDs(ctx context.Context, ids []uint) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if len(ids) == 0 {
		return recipes, nil
	}

	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Ingredients", orderIngredients).
		Where("id IN ?", ids).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// DeleteRecipe drops the join rows and the recipe. Shared ingredients stay.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Recipe{ID: id}).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) resolveIngredients(ctx context.Context, tx *gorm.DB, names []string) ([]*entities.Ingredient, error) {
	repo := r.ingredientRepository.WithTx(tx)

	ingredients := make([]*entities.Ingredient, 0, len(names))
	for _, name := range names {
		ingredient, err := repo.UpsertByName(ctx, name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

func orderIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("ingredients.id asc")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

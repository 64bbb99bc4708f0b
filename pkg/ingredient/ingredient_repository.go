package ingredient

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe-book/domain"
	"recipe-book/entities"
)

type (
	IngredientRepository interface {
		WithTx(tx *gorm.DB) IngredientRepository
		UpsertByName(ctx context.Context, name string) (*entities.Ingredient, error)
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredients(ctx context.Context) ([]*entities.Ingredient, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) WithTx(tx *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: tx}
}

var onNameConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "name"}},
	DoNothing: true,
}

// UpsertByName returns the ingredient with exactly this name, inserting it when missing.
// A concurrent insert of the same name is absorbed by the unique index and re-read.
func (r *ingredientRepository) UpsertByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	if existing, err := r.findByName(ctx, name); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ingredient := entities.Ingredient{Name: name}
	if err := r.db.WithContext(ctx).Clauses(onNameConflict).Create(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("insert ingredient %q: %w", name, err)
	}
	if ingredient.ID != 0 {
		return &ingredient, nil
	}

	existing, err := r.findByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("re-read ingredient %q: %w", name, err)
	}
	return existing, nil
}

func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	if err := r.db.WithContext(ctx).Clauses(onNameConflict).Create(ingredient).Error; err != nil {
		return err
	}
	if ingredient.ID == 0 {
		return domain.ErrIngredientExists
	}
	return nil
}

func (r *ingredientRepository) GetIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) findByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

package ingredient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recipe-book/domain"
	"recipe-book/entities"
)

type memoryIngredientRepository struct {
	byName map[string]*entities.Ingredient
	nextID uint
}

func newMemoryIngredientRepository() *memoryIngredientRepository {
	return &memoryIngredientRepository{byName: map[string]*entities.Ingredient{}}
}

func (m *memoryIngredientRepository) WithTx(tx *gorm.DB) IngredientRepository { return m }

func (m *memoryIngredientRepository) UpsertByName(ctx context.Context, name string) (*entities.Ingredient, error) {
	if existing, ok := m.byName[name]; ok {
		return existing, nil
	}
	m.nextID++
	ingredient := &entities.Ingredient{ID: m.nextID, Name: name}
	m.byName[name] = ingredient
	return ingredient, nil
}

func (m *memoryIngredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	if _, ok := m.byName[ingredient.Name]; ok {
		return domain.ErrIngredientExists
	}
	m.nextID++
	ingredient.ID = m.nextID
	m.byName[ingredient.Name] = ingredient
	return nil
}

func (m *memoryIngredientRepository) GetIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	res := make([]*entities.Ingredient, 0, len(m.byName))
	for _, ingredient := range m.byName {
		res = append(res, ingredient)
	}
	return res, nil
}

func strPtr(v string) *string { return &v }

func TestCreateIngredient(t *testing.T) {
	svc := NewIngredientService(newMemoryIngredientRepository())

	res, err := svc.CreateIngredient(context.Background(), domain.CreateIngredientRequest{
		Name:          "  Egg ",
		CaloriesCount: strPtr("155"),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), res.ID)
	assert.Equal(t, "Egg", res.Name)
	assert.Equal(t, "155", *res.CaloriesCount)
	assert.Nil(t, res.Description)
}

func TestCreateIngredient_Duplicate(t *testing.T) {
	svc := NewIngredientService(newMemoryIngredientRepository())

	_, err := svc.CreateIngredient(context.Background(), domain.CreateIngredientRequest{Name: "Salt"})
	require.NoError(t, err)

	_, err = svc.CreateIngredient(context.Background(), domain.CreateIngredientRequest{Name: "Salt"})
	assert.ErrorIs(t, err, domain.ErrIngredientExists)

	_, err = svc.CreateIngredient(context.Background(), domain.CreateIngredientRequest{Name: "salt"})
	assert.NoError(t, err, "names are case-sensitive")
}

func TestCreateIngredient_BlankName(t *testing.T) {
	svc := NewIngredientService(newMemoryIngredientRepository())

	_, err := svc.CreateIngredient(context.Background(), domain.CreateIngredientRequest{Name: "   "})

	var fieldErrors domain.FieldErrors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Contains(t, fieldErrors, "name")
}

func TestGetIngredients(t *testing.T) {
	repo := newMemoryIngredientRepository()
	_, _ = repo.UpsertByName(context.Background(), "Flour")
	svc := NewIngredientService(repo)

	res, err := svc.GetIngredients(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Flour", res[0].Name)
}

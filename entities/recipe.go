package entities

import (
	"time"

	"github.com/google/uuid"
)

type RecipeCategory string

const (
	CategoryBreakfast RecipeCategory = "B"
	CategoryDinner    RecipeCategory = "D"
	CategorySupper    RecipeCategory = "S"

	UnknownCategoryLabel = "Unknown category"
)

// RecipeCategories keeps the stored code to display label mapping in declaration order.
var RecipeCategories = []struct {
	Code  RecipeCategory
	Label string
}{
	{CategoryBreakfast, "Завтрак"},
	{CategoryDinner, "Обед"},
	{CategorySupper, "Ужин"},
}

func (c RecipeCategory) Label() string {
	for _, category := range RecipeCategories {
		if category.Code == c {
			return category.Label
		}
	}
	return UnknownCategoryLabel
}

func (c RecipeCategory) Valid() bool {
	return c.Label() != UnknownCategoryLabel
}

type Recipe struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	PreviewImage string         `gorm:"type:varchar(255)" json:"preview_image"`
	TimeMinutes  int            `gorm:"not null;default:1;check:time_minutes >= 1" json:"time_minutes"`
	Category     RecipeCategory `gorm:"type:varchar(1);not null;check:category IN ('B','D','S')" json:"category"`
	CreatedAt    time.Time      `gorm:"type:timestamp with time zone;autoCreateTime;<-:create;index" json:"created_at"`

	User        *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Ingredients []*Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (r *Recipe) CategoryLabel() string {
	return r.Category.Label()
}

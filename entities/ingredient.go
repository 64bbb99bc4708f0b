package entities

// Ingredient names are unique and compared case-sensitively.
type Ingredient struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CaloriesCount *string `gorm:"type:varchar(5)" json:"calories_count,omitempty"`
	Description   *string `gorm:"type:text" json:"description,omitempty"`
}

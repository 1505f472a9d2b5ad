package models

import (
	"time"
)

// Recipe is the aggregate root: it owns its RecipeIngredient rows and
// tag associations, both replaced wholesale on update.
type Recipe struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null;size:200"`
	AuthorID    uint   `gorm:"not null;index"`
	Text        string `gorm:"type:text;not null"`
	Image       string `gorm:"not null"`
	CookingTime int    `gorm:"not null"`
	PubDate     time.Time `gorm:"autoCreateTime;index"`

	Author      *User              `gorm:"foreignKey:AuthorID"`
	Tags        []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient links a recipe to an ingredient with an amount >= 1.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey"`
	RecipeID     uint `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	Amount       int  `gorm:"not null"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

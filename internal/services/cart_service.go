package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

// ShoppingListLine is one aggregated ingredient of the shopping list.
type ShoppingListLine struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

type CartService interface {
	// AddToCart marks a recipe for shopping-list aggregation.
	AddToCart(userID, recipeID uint) (*models.RecipeShort, error)
	// RemoveFromCart unmarks it; ErrNotFound when absent.
	RemoveFromCart(userID, recipeID uint) error
	// ShoppingList reduces the viewer's cart to one line per
	// (ingredient name, measurement unit), amounts summed. An empty
	// cart yields an empty slice, not an error.
	ShoppingList(userID uint) ([]ShoppingListLine, error)
}

type cartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) CartService {
	return &cartService{db: db}
}

func (s *cartService) AddToCart(userID, recipeID uint) (*models.RecipeShort, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	item := models.CartItem{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	return recipeShort(&recipe), nil
}

func (s *cartService) RemoveFromCart(userID, recipeID uint) error {
	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *cartService) ShoppingList(userID uint) ([]ShoppingListLine, error) {
	var lines []ShoppingListLine

	// Single reduce-by-key pass over the cart's recipe_ingredients
	// rows. Alphabetical order keeps the listing deterministic.
	err := s.db.Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}

	return lines, nil
}

// RenderShoppingList formats the aggregated lines as the plain-text
// attachment body: `<name> (<unit>) - <amount>`, one per line.
func RenderShoppingList(lines []ShoppingListLine) string {
	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "%s (%s) - %d\n", line.Name, line.MeasurementUnit, line.Amount)
	}
	return b.String()
}

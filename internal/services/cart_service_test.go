package services

import (
	"testing"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartTwice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	user := createTestUser(t, db, "alice")
	recipe := createTestRecipe(t, db, user, "pie", nil, nil)

	short, err := svc.AddToCart(user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, short.ID)

	_, err = svc.AddToCart(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	var n int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestRemoveFromCartAbsent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	user := createTestUser(t, db, "bob")
	recipe := createTestRecipe(t, db, user, "pizza", nil, nil)

	assert.ErrorIs(t, svc.RemoveFromCart(user.ID, recipe.ID), ErrNotFound)
}

func TestShoppingListAggregation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	user := createTestUser(t, db, "carol")
	sugar := createTestIngredient(t, db, "Sugar", "g")
	milk := createTestIngredient(t, db, "Milk", "ml")

	cake := createTestRecipe(t, db, user, "cake", nil, []models.RecipeIngredient{
		{IngredientID: sugar.ID, Amount: 100},
		{IngredientID: milk.ID, Amount: 200},
	})
	cocoa := createTestRecipe(t, db, user, "cocoa", nil, []models.RecipeIngredient{
		{IngredientID: sugar.ID, Amount: 250},
	})
	// A recipe outside the cart contributes nothing
	createTestRecipe(t, db, user, "syrup", nil, []models.RecipeIngredient{
		{IngredientID: sugar.ID, Amount: 1000},
	})

	_, err := svc.AddToCart(user.ID, cake.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(user.ID, cocoa.ID)
	require.NoError(t, err)

	lines, err := svc.ShoppingList(user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// Alphabetical by ingredient name, same ingredient summed once
	assert.Equal(t, ShoppingListLine{Name: "Milk", MeasurementUnit: "ml", Amount: 200}, lines[0])
	assert.Equal(t, ShoppingListLine{Name: "Sugar", MeasurementUnit: "g", Amount: 350}, lines[1])
}

func TestShoppingListEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	user := createTestUser(t, db, "dave")

	lines, err := svc.ShoppingList(user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRenderShoppingList(t *testing.T) {
	lines := []ShoppingListLine{
		{Name: "Milk", MeasurementUnit: "ml", Amount: 200},
		{Name: "Sugar", MeasurementUnit: "g", Amount: 350},
	}

	assert.Equal(t, "Milk (ml) - 200\nSugar (g) - 350\n", RenderShoppingList(lines))
	assert.Equal(t, "", RenderShoppingList(nil))
}

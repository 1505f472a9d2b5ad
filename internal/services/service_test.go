package services

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Subscription{},
	)
	require.NoError(t, err)

	return db
}

func newTestRecipeService(t *testing.T, db *gorm.DB) RecipeService {
	store := storage.NewDiskStore(t.TempDir(), "/media")
	return NewRecipeService(db, store)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "irrelevant-for-most-tests",
		Role:      "user",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	tag := &models.Tag{Name: slug, Color: fmt.Sprintf("#%06X", len(slug)*111111), Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// createTestRecipe inserts a recipe row directly, bypassing image decoding.
func createTestRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, tags []models.Tag, ingredients []models.RecipeIngredient) *models.Recipe {
	recipe := &models.Recipe{
		Name:        name,
		AuthorID:    author.ID,
		Text:        "Some preparation steps",
		Image:       "/media/recipes/images/" + name + ".png",
		CookingTime: 15,
		Tags:        tags,
		Ingredients: ingredients,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func testImageURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
}

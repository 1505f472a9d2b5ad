package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/foodgram/gin-foodgram-api/internal/middleware"
	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/services"
	"github.com/foodgram/gin-foodgram-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
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

	images := storage.NewDiskStore(t.TempDir(), "/media")
	recipeService := services.NewRecipeService(db, images)
	favoriteService := services.NewFavoriteService(db)
	cartService := services.NewCartService(db)
	rc := NewRecipeController(recipeService, favoriteService, cartService, 6)

	secret := []byte(testJWTSecret)
	authRequired := middleware.OAuth2Auth(secret)
	authOptional := middleware.OptionalAuth(secret)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	recipes := router.Group("/api/recipes")
	{
		recipes.GET("", authOptional, rc.ListRecipes)
		recipes.GET("/download_shopping_cart", authRequired, rc.DownloadShoppingCart)
		recipes.GET("/:id", authOptional, rc.GetRecipe)
		recipes.POST("", authRequired, rc.CreateRecipe)
		recipes.PATCH("/:id", authRequired, rc.UpdateRecipe)
		recipes.DELETE("/:id", authRequired, rc.DeleteRecipe)
		recipes.POST("/:id/shopping_cart", authRequired, rc.AddToCart)
	}
	return router, db
}

func bearerFor(t *testing.T, user *models.User) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  strconv.FormatUint(uint64(user.ID), 10),
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedRecipe(t *testing.T, db *gorm.DB, author *models.User, name string) *models.Recipe {
	recipe := &models.Recipe{
		Name:        name,
		AuthorID:    author.ID,
		Text:        "steps",
		Image:       "/media/recipes/images/" + name + ".png",
		CookingTime: 10,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func TestListRecipesAnonymous(t *testing.T) {
	router, db := setupTestRouter(t)
	author := seedUser(t, db, "alice", "user")
	seedRecipe(t, db, author, "pancakes")

	req := httptest.NewRequest("GET", "/api/recipes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Count   int64                    `json:"count"`
		Next    *string                  `json:"next"`
		Results []map[string]interface{} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 1, page.Count)
	assert.Nil(t, page.Next)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "pancakes", page.Results[0]["name"])
	assert.Equal(t, false, page.Results[0]["is_favorited"])
	assert.Equal(t, false, page.Results[0]["is_in_shopping_cart"])
}

func TestListRecipesPageLinks(t *testing.T) {
	router, db := setupTestRouter(t)
	author := seedUser(t, db, "bob", "user")
	for _, name := range []string{"one", "two", "three"} {
		seedRecipe(t, db, author, name)
	}

	req := httptest.NewRequest("GET", "/api/recipes?page=2&limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Count    int64   `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 3, page.Count)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=3")
	require.NotNil(t, page.Previous)
	assert.Contains(t, *page.Previous, "page=1")
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("POST", "/api/recipes", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateRecipeForbiddenForNonAuthor(t *testing.T) {
	router, db := setupTestRouter(t)
	author := seedUser(t, db, "carol", "user")
	other := seedUser(t, db, "dave", "user")
	recipe := seedRecipe(t, db, author, "stew")

	body := `{"name":"Taken over","text":"x","cooking_time":5,"tags":[1],"ingredients":[{"id":1,"amount":1}]}`
	req := httptest.NewRequest("PATCH", "/api/recipes/"+strconv.Itoa(int(recipe.ID)), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerFor(t, other))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteRecipeAsAdmin(t *testing.T) {
	router, db := setupTestRouter(t)
	author := seedUser(t, db, "erin", "user")
	admin := seedUser(t, db, "frank", "admin")
	recipe := seedRecipe(t, db, author, "cake")

	req := httptest.NewRequest("DELETE", "/api/recipes/"+strconv.Itoa(int(recipe.ID)), nil)
	req.Header.Set("Authorization", bearerFor(t, admin))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	var n int64
	db.Model(&models.Recipe{}).Count(&n)
	assert.EqualValues(t, 0, n)
}

func TestDownloadShoppingCart(t *testing.T) {
	router, db := setupTestRouter(t)
	user := seedUser(t, db, "grace", "user")
	sugar := &models.Ingredient{Name: "Sugar", MeasurementUnit: "g"}
	require.NoError(t, db.Create(sugar).Error)

	recipe := seedRecipe(t, db, user, "cocoa")
	require.NoError(t, db.Create(&models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: sugar.ID, Amount: 40}).Error)

	addReq := httptest.NewRequest("POST", "/api/recipes/"+strconv.Itoa(int(recipe.ID))+"/shopping_cart", nil)
	addReq.Header.Set("Authorization", bearerFor(t, user))
	addRec := httptest.NewRecorder()
	router.ServeHTTP(addRec, addReq)
	require.Equal(t, http.StatusCreated, addRec.Code)

	req := httptest.NewRequest("GET", "/api/recipes/download_shopping_cart", nil)
	req.Header.Set("Authorization", bearerFor(t, user))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shopping_list.txt")
	assert.Equal(t, "Sugar (g) - 40\n", w.Body.String())
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RecipeController handles HTTP requests related to recipes
type RecipeController interface {
	// ListRecipes retrieves one page of recipes with filters
	ListRecipes(c *gin.Context)
	// GetRecipe retrieves a recipe by its ID
	GetRecipe(c *gin.Context)
	// CreateRecipe creates a new recipe
	CreateRecipe(c *gin.Context)
	// UpdateRecipe updates an existing recipe
	UpdateRecipe(c *gin.Context)
	// DeleteRecipe deletes a recipe by its ID
	DeleteRecipe(c *gin.Context)
	// Favorite / Unfavorite toggle the favorite relation
	Favorite(c *gin.Context)
	Unfavorite(c *gin.Context)
	// AddToCart / RemoveFromCart toggle the shopping-cart relation
	AddToCart(c *gin.Context)
	RemoveFromCart(c *gin.Context)
	// DownloadShoppingCart returns the aggregated shopping list
	DownloadShoppingCart(c *gin.Context)
}

type recipeController struct {
	recipeService   services.RecipeService
	favoriteService services.FavoriteService
	cartService     services.CartService
	pageSize        int
}

// NewRecipeController creates a new instance of RecipeController
func NewRecipeController(recipeService services.RecipeService, favoriteService services.FavoriteService, cartService services.CartService, pageSize int) *recipeController {
	return &recipeController{
		recipeService:   recipeService,
		favoriteService: favoriteService,
		cartService:     cartService,
		pageSize:        pageSize,
	}
}

// ListRecipes godoc
// @Summary List recipes
// @Description Get recipes ordered newest first, with optional filtering
// @Tags recipes
// @Produce json
// @Param tags query []string false "Tag slugs (OR semantics)"
// @Param author query int false "Filter by author id"
// @Param is_favorited query bool false "Only favorited recipes (authenticated viewers)"
// @Param is_in_shopping_cart query bool false "Only cart recipes (authenticated viewers)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.Page
// @Failure 500 {object} map[string]string
// @Router /api/recipes [get]
func (rc *recipeController) ListRecipes(c *gin.Context) {
	filter := services.RecipeFilter{
		TagSlugs:  c.QueryArray("tags"),
		Favorited: c.Query("is_favorited") == "1" || c.Query("is_favorited") == "true",
		InCart:    c.Query("is_in_shopping_cart") == "1" || c.Query("is_in_shopping_cart") == "true",
	}
	if author := c.Query("author"); author != "" {
		if id, err := strconv.Atoi(author); err == nil && id > 0 {
			filter.AuthorID = uint(id)
		}
	}

	page, limit := paginationParams(c, rc.pageSize)
	viewerID := currentUserID(c)

	recipes, count, err := rc.recipeService.ListRecipes(filter, viewerID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, count, page, limit, recipes))
}

// GetRecipe godoc
// @Summary Get recipe by ID
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.RecipeResponse
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id} [get]
func (rc *recipeController) GetRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := rc.recipeService.GetRecipe(id, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe godoc
// @Summary Create a recipe
// @Description Create a recipe with its ingredient amounts, tags and base64 image
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body models.RecipeInput true "Recipe payload"
// @Success 201 {object} models.RecipeResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/recipes [post]
func (rc *recipeController) CreateRecipe(c *gin.Context) {
	var input models.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := currentUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipe, err := rc.recipeService.CreateRecipe(userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe godoc
// @Summary Update a recipe
// @Description Replace the recipe fields and its whole ingredient/tag set (author or staff)
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body models.RecipeInput true "Recipe payload"
// @Success 200 {object} models.RecipeResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/recipes/{id} [patch]
func (rc *recipeController) UpdateRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	// Get the existing recipe to check ownership
	existing, err := rc.recipeService.GetRecipeModel(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	userID := currentUserID(c)
	if existing.AuthorID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own recipes"})
		return
	}

	var input models.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	recipe, err := rc.recipeService.UpdateRecipe(id, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Delete a recipe by its ID (author or staff)
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/recipes/{id} [delete]
func (rc *recipeController) DeleteRecipe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	existing, err := rc.recipeService.GetRecipeModel(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if existing.AuthorID != currentUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own recipes"})
		return
	}

	if err := rc.recipeService.DeleteRecipe(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// Favorite godoc
// @Summary Favorite a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} models.RecipeShort
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/recipes/{id}/favorite [post]
func (rc *recipeController) Favorite(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	short, err := rc.favoriteService.AddFavorite(currentUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, short)
}

// Unfavorite godoc
// @Summary Remove a recipe from favorites
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/recipes/{id}/favorite [delete]
func (rc *recipeController) Unfavorite(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	if err := rc.favoriteService.RemoveFavorite(currentUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// AddToCart godoc
// @Summary Add a recipe to the shopping cart
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 201 {object} models.RecipeShort
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/recipes/{id}/shopping_cart [post]
func (rc *recipeController) AddToCart(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	short, err := rc.cartService.AddToCart(currentUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, short)
}

// RemoveFromCart godoc
// @Summary Remove a recipe from the shopping cart
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/recipes/{id}/shopping_cart [delete]
func (rc *recipeController) RemoveFromCart(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	if err := rc.cartService.RemoveFromCart(currentUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// DownloadShoppingCart godoc
// @Summary Download the shopping list
// @Description Aggregated ingredient amounts over the viewer's cart as a plain-text attachment
// @Tags recipes
// @Produce plain
// @Success 200 {string} string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/recipes/download_shopping_cart [get]
func (rc *recipeController) DownloadShoppingCart(c *gin.Context) {
	lines, err := rc.cartService.ShoppingList(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build shopping list"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=shopping_list.txt`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(services.RenderShoppingList(lines)))
}

package controllers

import (
	"net/http"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	ingredientService services.IngredientService
}

func NewIngredientController(ingredientService services.IngredientService) *IngredientController {
	return &IngredientController{ingredientService: ingredientService}
}

// ListIngredients godoc
// @Summary List ingredients
// @Description Get all ingredients, optionally filtered by a case-sensitive name prefix
// @Tags ingredients
// @Produce json
// @Param name query string false "Name prefix"
// @Success 200 {array} models.Ingredient
// @Failure 500 {object} map[string]string
// @Router /api/ingredients [get]
func (ic *IngredientController) ListIngredients(c *gin.Context) {
	ingredients, err := ic.ingredientService.ListIngredients(c.Query("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredients"})
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// GetIngredientByID godoc
// @Summary Get ingredient by ID
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} map[string]string
// @Router /api/ingredients/{id} [get]
func (ic *IngredientController) GetIngredientByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID"})
		return
	}

	ingredient, err := ic.ingredientService.GetIngredientByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Description Create a new ingredient (staff only)
// @Tags ingredients
// @Accept json
// @Produce json
// @Param ingredient body models.Ingredient true "Ingredient object"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/ingredients [post]
func (ic *IngredientController) CreateIngredient(c *gin.Context) {
	var ingredient models.Ingredient
	if err := c.ShouldBindJSON(&ingredient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := ic.ingredientService.CreateIngredient(&ingredient); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

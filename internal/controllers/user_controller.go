package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService         services.UserService
	subscriptionService services.SubscriptionService
	pageSize            int
	recipesLimit        int
}

func NewUserController(userService services.UserService, subscriptionService services.SubscriptionService, pageSize, recipesLimit int) *UserController {
	return &UserController{
		userService:         userService,
		subscriptionService: subscriptionService,
		pageSize:            pageSize,
		recipesLimit:        recipesLimit,
	}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} models.UserProfile
// @Failure 400 {object} map[string]string
// @Router /api/users [post]
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email,max=254"`
		Username  string `json:"username" binding:"required,max=150"`
		FirstName string `json:"first_name" binding:"required,max=150"`
		LastName  string `json:"last_name" binding:"required,max=150"`
		Password  string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrValidationFailed, "message": err.Error()})
		return
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}

	if err := user.HashPassword(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": models.ErrInternalServer})
		return
	}

	if err := uc.userService.CreateUser(user); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUsername):
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidUsername, "message": "username contains invalid characters"})
		case errors.Is(err, services.ErrUserExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUserAlreadyExists, "message": "email or username already taken"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": models.ErrInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, models.UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.Page
// @Router /api/users [get]
func (uc *UserController) ListUsers(c *gin.Context) {
	page, limit := paginationParams(c, uc.pageSize)

	profiles, count, err := uc.userService.ListProfiles(currentUserID(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, count, page, limit, profiles))
}

// GetUser godoc
// @Summary Get a user profile
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserProfile
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	profile, err := uc.userService.Profile(id, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.UserProfile
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/users/me [get]
func (uc *UserController) Me(c *gin.Context) {
	userID := currentUserID(c)

	profile, err := uc.userService.Profile(userID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SetPassword godoc
// @Summary Change the authenticated user's password
// @Tags users
// @Accept json
// @Produce json
// @Success 204
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/users/set_password [post]
func (uc *UserController) SetPassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrValidationFailed, "message": err.Error()})
		return
	}

	if err := uc.userService.SetPassword(currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrValidationFailed, "field": "current_password", "message": "wrong password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": models.ErrInternalServer})
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// Subscribe godoc
// @Summary Subscribe to an author
// @Tags users
// @Produce json
// @Param id path int true "Author ID"
// @Param recipes_limit query int false "Recipes per author in the response"
// @Success 201 {object} models.SubscriptionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/users/{id}/subscribe [post]
func (uc *UserController) Subscribe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	resp, err := uc.subscriptionService.Subscribe(currentUserID(c), id, uc.recipesLimitParam(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Unsubscribe godoc
// @Summary Unsubscribe from an author
// @Tags users
// @Produce json
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/users/{id}/subscribe [delete]
func (uc *UserController) Unsubscribe(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := uc.subscriptionService.Unsubscribe(currentUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

// ListSubscriptions godoc
// @Summary List subscribed authors
// @Description Authors the viewer follows, each with a capped recipe preview
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param recipes_limit query int false "Recipes per author in the response"
// @Success 200 {object} models.Page
// @Security BearerAuth
// @Router /api/users/subscriptions [get]
func (uc *UserController) ListSubscriptions(c *gin.Context) {
	page, limit := paginationParams(c, uc.pageSize)

	results, count, err := uc.subscriptionService.ListSubscriptions(currentUserID(c), uc.recipesLimitParam(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscriptions"})
		return
	}
	c.JSON(http.StatusOK, pageEnvelope(c, count, page, limit, results))
}

func (uc *UserController) recipesLimitParam(c *gin.Context) int {
	if raw := c.Query("recipes_limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return uc.recipesLimit
}

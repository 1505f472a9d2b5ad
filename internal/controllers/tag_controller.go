package controllers

import (
	"net/http"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
)

type TagController struct {
	tagService services.TagService
}

func NewTagController(tagService services.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// GetAllTags godoc
// @Summary List tags
// @Description Get all recipe tags
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Failure 500 {object} map[string]string
// @Router /api/tags [get]
func (tc *TagController) GetAllTags(c *gin.Context) {
	tags, err := tc.tagService.GetAllTags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tags"})
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTagByID godoc
// @Summary Get tag by ID
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} map[string]string
// @Router /api/tags/{id} [get]
func (tc *TagController) GetTagByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	tag, err := tc.tagService.GetTagByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}
	c.JSON(http.StatusOK, tag)
}

// CreateTag godoc
// @Summary Create a tag
// @Description Create a new tag (staff only)
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body models.Tag true "Tag object"
// @Success 201 {object} models.Tag
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/tags [post]
func (tc *TagController) CreateTag(c *gin.Context) {
	var tag models.Tag
	if err := c.ShouldBindJSON(&tag); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := tc.tagService.CreateTag(&tag); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

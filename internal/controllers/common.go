package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUserID returns the authenticated user's id, or 0 for an
// anonymous viewer (possible on routes behind OptionalAuth).
func currentUserID(c *gin.Context) uint {
	userID, exists := c.Get("userID")
	if !exists {
		return 0
	}
	switch v := userID.(type) {
	case uint:
		return v
	case int:
		return uint(v)
	default:
		return 0
	}
}

// isAdmin reports whether the token carries the staff role.
func isAdmin(c *gin.Context) bool {
	role, _ := c.Get("userRole")
	return role == "admin"
}

// paginationParams reads `page` and `limit` query parameters, falling
// back to page 1 and the configured default page size.
func paginationParams(c *gin.Context, defaultLimit int) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// pageEnvelope wraps one result page with count/next/previous links.
func pageEnvelope(c *gin.Context, count int64, page, limit int, results interface{}) models.Page {
	envelope := models.Page{Count: count, Results: results}

	if int64(page*limit) < count {
		next := pageURL(c.Request.URL, page+1)
		envelope.Next = &next
	}
	if page > 1 {
		previous := pageURL(c.Request.URL, page-1)
		envelope.Previous = &previous
	}
	return envelope
}

func pageURL(u *url.URL, page int) string {
	copied := *u
	q := copied.Query()
	q.Set("page", strconv.Itoa(page))
	copied.RawQuery = q.Encode()
	return copied.String()
}

// pathID parses the numeric id path parameter.
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id: %s", c.Param("id"))
	}
	return uint(id), nil
}

// respondServiceError maps service sentinels and validation errors to
// the client error taxonomy. NotFound and PermissionDenied stay
// distinct; validation failures carry the field message.
func respondServiceError(c *gin.Context, err error) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   models.ErrValidationFailed,
			"field":   validation.Field,
			"message": validation.Message,
		})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrNotFound})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrConflict, "message": "already exists"})
	case errors.Is(err, services.ErrSelfSubscription):
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrSelfSubscription, "message": "cannot subscribe to self"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": models.ErrInternalServer})
	}
}

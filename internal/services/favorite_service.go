package services

import (
	"errors"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

type FavoriteService interface {
	// AddFavorite bookmarks a recipe and returns its short projection.
	AddFavorite(userID, recipeID uint) (*models.RecipeShort, error)
	// RemoveFavorite deletes the bookmark; ErrNotFound when absent.
	RemoveFavorite(userID, recipeID uint) error
}

type favoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) FavoriteService {
	return &favoriteService{db: db}
}

func (s *favoriteService) AddFavorite(userID, recipeID uint) (*models.RecipeShort, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// No check-then-insert: the composite unique index decides, so two
	// concurrent adds cannot both succeed.
	favorite := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	return recipeShort(&recipe), nil
}

func (s *favoriteService) RemoveFavorite(userID, recipeID uint) error {
	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

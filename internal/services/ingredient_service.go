package services

import (
	"errors"
	"strings"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

type IngredientService interface {
	// ListIngredients returns all ingredients, optionally narrowed to a
	// case-sensitive name prefix.
	ListIngredients(namePrefix string) ([]models.Ingredient, error)
	GetIngredientByID(id uint) (models.Ingredient, error)
	CreateIngredient(ingredient *models.Ingredient) error
}

type ingredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{db: db}
}

func (s *ingredientService) ListIngredients(namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient

	query := s.db.Order("name")
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}

	if namePrefix == "" {
		return ingredients, nil
	}

	// SQLite's LIKE is case-insensitive for ASCII, so the prefix match
	// is re-checked here to keep the contract case-sensitive on every
	// driver.
	filtered := ingredients[:0]
	for _, ing := range ingredients {
		if strings.HasPrefix(ing.Name, namePrefix) {
			filtered = append(filtered, ing)
		}
	}
	return filtered, nil
}

func (s *ingredientService) GetIngredientByID(id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) CreateIngredient(ingredient *models.Ingredient) error {
	if err := s.db.Create(ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

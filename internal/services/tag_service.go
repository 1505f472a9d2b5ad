package services

import (
	"errors"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

type TagService interface {
	GetAllTags() ([]models.Tag, error)
	GetTagByID(id uint) (models.Tag, error)
	CreateTag(tag *models.Tag) error
}

type tagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) TagService {
	return &tagService{db: db}
}

func (s *tagService) GetAllTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagService) GetTagByID(id uint) (models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *tagService) CreateTag(tag *models.Tag) error {
	if err := s.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

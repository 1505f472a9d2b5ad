package services

import (
	"errors"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

type SubscriptionService interface {
	// Subscribe creates the follow edge and returns the author's
	// augmented projection with up to recipesLimit recipes.
	Subscribe(subscriberID, authorID uint, recipesLimit int) (*models.SubscriptionResponse, error)
	// Unsubscribe removes the edge; ErrNotFound when absent.
	Unsubscribe(subscriberID, authorID uint) error
	// ListSubscriptions returns one page of subscribed authors.
	ListSubscriptions(subscriberID uint, recipesLimit, page, limit int) ([]models.SubscriptionResponse, int64, error)
}

type subscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) SubscriptionService {
	return &subscriptionService{db: db}
}

func (s *subscriptionService) Subscribe(subscriberID, authorID uint, recipesLimit int) (*models.SubscriptionResponse, error) {
	// Self-subscription is forbidden regardless of any other state.
	if subscriberID == authorID {
		return nil, ErrSelfSubscription
	}

	var author models.User
	if err := s.db.First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	subscription := models.Subscription{SubscriberID: subscriberID, AuthorID: authorID}
	if err := s.db.Create(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	return s.authorResponse(&author, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(subscriberID, authorID uint) error {
	result := s.db.Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).Delete(&models.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *subscriptionService) ListSubscriptions(subscriberID uint, recipesLimit, page, limit int) ([]models.SubscriptionResponse, int64, error) {
	query := s.db.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	offset := (page - 1) * limit
	if err := query.Order("subscriptions.id DESC").Offset(offset).Limit(limit).Find(&authors).Error; err != nil {
		return nil, 0, err
	}

	responses := make([]models.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		resp, err := s.authorResponse(&authors[i], recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *resp)
	}
	return responses, count, nil
}

// authorResponse builds the augmented author projection: profile with
// is_subscribed=true, a capped recipe list and the authored total.
func (s *subscriptionService) authorResponse(author *models.User, recipesLimit int) (*models.SubscriptionResponse, error) {
	var recipes []models.Recipe
	query := s.db.Where("author_id = ?", author.ID).Order("pub_date DESC, id DESC")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&total).Error; err != nil {
		return nil, err
	}

	shorts := make([]models.RecipeShort, 0, len(recipes))
	for i := range recipes {
		shorts = append(shorts, *recipeShort(&recipes[i]))
	}

	return &models.SubscriptionResponse{
		UserProfile: models.UserProfile{
			ID:           author.ID,
			Email:        author.Email,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: true,
		},
		Recipes:      shorts,
		RecipesCount: total,
	}, nil
}

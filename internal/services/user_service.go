package services

import (
	"errors"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	// ListProfiles returns one page of user profiles with the viewer's
	// is_subscribed flags resolved in a single pass.
	ListProfiles(viewerID uint, page, limit int) ([]models.UserProfile, int64, error)
	SetPassword(userID uint, currentPassword, newPassword string) error
	// Profile builds the API representation with the viewer-dependent
	// is_subscribed flag. viewerID 0 means anonymous.
	Profile(userID, viewerID uint) (*models.UserProfile, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	if !models.ValidUsername(user.Username) {
		return ErrInvalidUsername
	}

	var existing models.User
	if err := s.db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existing).Error; err == nil {
		return ErrUserExists
	}

	if err := s.db.Create(user).Error; err != nil {
		// The unique indexes close the races the lookup above leaves open.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) ListProfiles(viewerID uint, page, limit int) ([]models.UserProfile, int64, error) {
	var users []models.User
	var count int64

	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := s.db.Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	subscribed := make(map[uint]bool)
	if viewerID != 0 && len(users) > 0 {
		ids := make([]uint, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		var subs []models.Subscription
		if err := s.db.Where("subscriber_id = ? AND author_id IN ?", viewerID, ids).Find(&subs).Error; err != nil {
			return nil, 0, err
		}
		for _, sub := range subs {
			subscribed[sub.AuthorID] = true
		}
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, models.UserProfile{
			ID:           u.ID,
			Email:        u.Email,
			Username:     u.Username,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			IsSubscribed: subscribed[u.ID],
		})
	}
	return profiles, count, nil
}

func (s *userService) SetPassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(currentPassword) {
		return ErrWrongPassword
	}

	user.Password = newPassword
	if err := user.HashPassword(); err != nil {
		return err
	}
	return s.db.Model(user).Update("password", user.Password).Error
}

func (s *userService) Profile(userID, viewerID uint) (*models.UserProfile, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	if viewerID != 0 {
		var n int64
		if err := s.db.Model(&models.Subscription{}).
			Where("subscriber_id = ? AND author_id = ?", viewerID, userID).
			Count(&n).Error; err != nil {
			return nil, err
		}
		profile.IsSubscribed = n > 0
	}

	return profile, nil
}

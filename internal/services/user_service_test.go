package services

import (
	"testing"

	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user := &models.User{
		Email:     "new@example.com",
		Username:  "new.user",
		FirstName: "New",
		LastName:  "User",
		Password:  "hash-goes-here",
	}
	require.NoError(t, svc.CreateUser(user))
	assert.NotZero(t, user.ID)
}

func TestCreateUserInvalidUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	err := svc.CreateUser(&models.User{
		Email:    "bad@example.com",
		Username: "no spaces allowed",
		Password: "hash",
	})
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestCreateUserTakenIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	existing := createTestUser(t, db, "alice")

	err := svc.CreateUser(&models.User{
		Email:    existing.Email,
		Username: "someone.else",
		Password: "hash",
	})
	assert.ErrorIs(t, err, ErrUserExists)

	err = svc.CreateUser(&models.User{
		Email:    "other@example.com",
		Username: existing.Username,
		Password: "hash",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestSetPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	user := &models.User{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "old-password",
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, db.Create(user).Error)

	assert.ErrorIs(t, svc.SetPassword(user.ID, "wrong-password", "new-password"), ErrWrongPassword)

	require.NoError(t, svc.SetPassword(user.ID, "old-password", "new-password"))

	updated, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, updated.CheckPassword("new-password"))
	assert.False(t, updated.CheckPassword("old-password"))
}

func TestProfileSubscribedFlag(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	author := createTestUser(t, db, "carol")
	follower := createTestUser(t, db, "dave")
	require.NoError(t, db.Create(&models.Subscription{SubscriberID: follower.ID, AuthorID: author.ID}).Error)

	profile, err := svc.Profile(author.ID, follower.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", profile.Username)
	assert.True(t, profile.IsSubscribed)

	// Anonymous viewers never see the flag set
	profile, err = svc.Profile(author.ID, 0)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
}

func TestListProfiles(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	require.NoError(t, db.Create(&models.Subscription{SubscriberID: carol.ID, AuthorID: alice.ID}).Error)

	profiles, count, err := svc.ListProfiles(carol.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, profiles, 2)

	assert.Equal(t, alice.ID, profiles[0].ID)
	assert.True(t, profiles[0].IsSubscribed)
	assert.Equal(t, bob.ID, profiles[1].ID)
	assert.False(t, profiles[1].IsSubscribed)
}

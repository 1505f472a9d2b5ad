package models

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OAuthClient is a registered token consumer. This API serves a single
// first-party client seeded at startup; secrets are stored as bcrypt
// hashes.
type OAuthClient struct {
	ID         string `gorm:"primaryKey"`
	Secret     string `gorm:"not null"`
	Name       string
	Domain     string
	UserID     uint
	Scopes     string // space-separated list of allowed scopes
	GrantTypes string // space-separated list, e.g. "password"
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

// oauth2.ClientInfo implementation.

func (c *OAuthClient) GetID() string     { return c.ID }
func (c *OAuthClient) GetSecret() string { return c.Secret }
func (c *OAuthClient) GetDomain() string { return c.Domain }
func (c *OAuthClient) IsPublic() bool    { return false }

func (c *OAuthClient) GetUserID() string {
	if c.UserID == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(c.UserID), 10)
}

// VerifyPassword implements oauth2.ClientPasswordVerifier so the stored
// bcrypt hash is compared instead of the raw secret.
func (c *OAuthClient) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(password)) == nil
}

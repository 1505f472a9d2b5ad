package models

import (
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// usernameRe mirrors the allowed-character rule enforced at registration:
// word characters plus . @ + - only.
var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null;size:254"`
	Username  string `gorm:"uniqueIndex;not null;size:150"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"default:'user'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidUsername reports whether a username matches the allowed pattern.
func ValidUsername(name string) bool {
	return usernameRe.MatchString(name)
}

// IsStaff reports whether the user may override author-only permissions.
func (u *User) IsStaff() bool {
	return u.Role == "admin"
}

// HashPassword replaces the plain-text password with its bcrypt hash.
func (u *User) HashPassword() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword verifies a plain-text password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

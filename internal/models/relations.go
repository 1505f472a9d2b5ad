package models

import "time"

// Favorite bookmarks a recipe for a user. The composite unique index is
// what makes concurrent double-adds safe: the second insert fails at
// the storage layer instead of racing a check-then-insert.
type Favorite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	RecipeID  uint `gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe"`
	CreatedAt time.Time

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// CartItem marks a recipe for shopping-list aggregation.
type CartItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	RecipeID  uint `gorm:"not null;index;uniqueIndex:idx_cart_user_recipe"`
	CreatedAt time.Time

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subscription is a directed follow edge from subscriber to author.
// Self-subscription is rejected in the service layer.
type Subscription struct {
	ID           uint `gorm:"primaryKey"`
	SubscriberID uint `gorm:"not null;index;uniqueIndex:idx_subscriber_author"`
	AuthorID     uint `gorm:"not null;index;uniqueIndex:idx_subscriber_author"`
	CreatedAt    time.Time

	Subscriber *User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
	Author     *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

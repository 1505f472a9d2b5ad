package models

// Tag is static reference data attached to recipes.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;not null;size:200" json:"name"`
	Color string `gorm:"uniqueIndex;not null;size:7" json:"color"`
	Slug  string `gorm:"uniqueIndex;not null;size:200" json:"slug"`
}

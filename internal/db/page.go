package db

import "gorm.io/gorm"

// Page is a single catalogued link inside a category. The (CategoryID, Title)
// pair is the identity key for upserts.
type Page struct {
	gorm.Model
	CategoryID uint   `gorm:"not null;uniqueIndex:idx_pages_category_title"`
	Title      string `gorm:"not null;uniqueIndex:idx_pages_category_title"`
	URL        string `gorm:"not null"`
	Views      int    `gorm:"not null;default:0"`
}

package db

import "gorm.io/gorm"

// Category groups pages that link to sites with similar content. Name is the
// identity key for upserts; Slug is always re-derived from Name before a save
// and is what appears in URLs.
type Category struct {
	gorm.Model
	Name  string `gorm:"unique;not null"`
	Slug  string `gorm:"uniqueIndex;not null"`
	Views int    `gorm:"not null;default:0"`
	Likes int    `gorm:"not null;default:0"`
	Pages []Page `gorm:"constraint:OnDelete:CASCADE"`
}

package service

import (
	"errors"

	"github.com/JayWelborn/Rango/internal/db"
	"gorm.io/gorm"
)

var ErrPageNotFound = errors.New("page not found")

// EngagementService owns the view and like counters. Increments are applied
// as single SQL-level updates so concurrent hits on the same row never lose
// writes; no coordination is needed across distinct rows.
type EngagementService struct {
	db *gorm.DB
}

// NewEngagementService returns an EngagementService backed by gdb.
func NewEngagementService(gdb *gorm.DB) *EngagementService {
	return &EngagementService{db: gdb}
}

// IncrementPageViews bumps a page's view counter by one and returns the new
// count together with the page, so callers can redirect to its URL. A page id
// that does not resolve yields ErrPageNotFound and no write.
func (s *EngagementService) IncrementPageViews(pageID uint) (int, *db.Page, error) {
	var page db.Page

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db.Page{}).
			Where("id = ?", pageID).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPageNotFound
		}

		return tx.First(&page, pageID).Error
	}); err != nil {
		return 0, nil, err
	}

	return page.Views, &page, nil
}

// IncrementCategoryLikes bumps a category's like counter by one and returns
// the new count. An unknown category id yields ErrCategoryNotFound.
func (s *EngagementService) IncrementCategoryLikes(categoryID uint) (int, error) {
	var category db.Category

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db.Category{}).
			Where("id = ?", categoryID).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}

		return tx.First(&category, categoryID).Error
	}); err != nil {
		return 0, err
	}

	return category.Likes, nil
}

// TopCategoriesByLikes returns the n most liked categories, ties broken by
// insertion order.
func (s *EngagementService) TopCategoriesByLikes(n int) ([]db.Category, error) {
	if n <= 0 {
		n = 5
	}

	var categories []db.Category
	if err := s.db.
		Order("likes DESC").
		Order("id ASC").
		Limit(n).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// TopPagesByViews returns the n most viewed pages, ties broken by insertion
// order.
func (s *EngagementService) TopPagesByViews(n int) ([]db.Page, error) {
	if n <= 0 {
		n = 5
	}

	var pages []db.Page
	if err := s.db.
		Order("views DESC").
		Order("id ASC").
		Limit(n).
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

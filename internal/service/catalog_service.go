package service

import (
	"errors"
	"strings"

	"github.com/JayWelborn/Rango/internal/db"
	"github.com/JayWelborn/Rango/internal/slug"
	"gorm.io/gorm"
)

var (
	ErrInvalidCategoryName = errors.New("category name must contain at least one letter or digit")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryRequired    = errors.New("page requires an existing category")
	ErrPageTitleRequired   = errors.New("page title is required")
)

// CatalogService maintains the category and page catalog. All writes go
// through the upsert operations so the derived-slug and URL-normalization
// rules hold regardless of entry point.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService returns a CatalogService backed by gdb.
func NewCatalogService(gdb *gorm.DB) *CatalogService {
	return &CatalogService{db: gdb}
}

// UpsertCategory finds the category named name or initializes a new one,
// overwrites its views and likes with the supplied values, re-derives the
// slug, and persists. Calling it repeatedly with the same arguments converges
// on a single stored row.
func (s *CatalogService) UpsertCategory(name string, views, likes int) (*db.Category, error) {
	name = strings.TrimSpace(name)
	derived := slug.Make(name)
	if name == "" || derived == "" {
		return nil, ErrInvalidCategoryName
	}

	var category db.Category
	err := s.db.Where("name = ?", name).First(&category).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		category = db.Category{Name: name}
	case err != nil:
		return nil, err
	}

	category.Slug = derived
	category.Views = views
	category.Likes = likes

	// A distinct name whose slug collides with an existing row surfaces
	// here through the unique index rather than silently overwriting.
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// UpsertPage finds the page identified by (category, title) or initializes a
// new one, then overwrites its URL (normalized) and views and persists. A nil
// or unsaved category is refused before anything is written.
func (s *CatalogService) UpsertPage(category *db.Category, title, url string, views int) (*db.Page, error) {
	if category == nil || category.ID == 0 {
		return nil, ErrCategoryRequired
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrPageTitleRequired
	}

	var page db.Page
	err := s.db.Where("category_id = ? AND title = ?", category.ID, title).First(&page).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		page = db.Page{CategoryID: category.ID, Title: title}
	case err != nil:
		return nil, err
	}

	page.URL = NormalizeURL(url)
	page.Views = views

	if err := s.db.Save(&page).Error; err != nil {
		return nil, err
	}

	return &page, nil
}

// GetCategoryBySlug fetches a category by its slug.
func (s *CatalogService) GetCategoryBySlug(categorySlug string) (*db.Category, error) {
	var category db.Category
	if err := s.db.Where("slug = ?", categorySlug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// PagesForCategory lists a category's pages, most viewed first.
func (s *CatalogService) PagesForCategory(categoryID uint) ([]db.Page, error) {
	var pages []db.Page
	if err := s.db.
		Where("category_id = ?", categoryID).
		Order("views DESC").
		Order("id ASC").
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// SuggestCategories returns up to max categories whose name starts with
// startsWith, for the inline suggestion box. An empty prefix matches nothing.
func (s *CatalogService) SuggestCategories(startsWith string, max int) ([]db.Category, error) {
	startsWith = strings.TrimSpace(startsWith)
	if startsWith == "" || max <= 0 {
		return []db.Category{}, nil
	}

	var categories []db.Category
	if err := s.db.
		Where("name LIKE ?", startsWith+"%").
		Order("name ASC").
		Limit(max).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// NormalizeURL prepends http:// to any address that does not already carry an
// http or https scheme. Every persistence path runs page URLs through this.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "http://" + url
}

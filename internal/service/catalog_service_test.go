package service

import (
	"errors"
	"testing"

	"github.com/JayWelborn/Rango/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCatalogTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Category{}, &db.Page{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestUpsertCategoryCreatesWithDerivedSlug(t *testing.T) {
	cleanup := setupCatalogTestDB(t)
	defer cleanup()

	svc := NewCatalogService(db.DB)
	category, err := svc.UpsertCategory("Other Frameworks", 32, 16)
	if err != nil {
		t.Fatalf("UpsertCategory returned error: %v", err)
	}

	if category.Slug != "other-frameworks" {
		t.Fatalf("expected slug 'other-frameworks', got %q", category.Slug)
	}
	if category.Views != 32 || category.Likes != 16 {
		t.Fatalf("expected views=32 likes=16, got views=%d likes=%d", category.Views, category.Likes)
	}
}

func TestUpsertCategoryIsConvergent(t *testing.T) {
	cleanup := setupCatalogTestDB(t)
	defer cleanup()

	svc := NewCatalogService(db.DB)
	if _, err := svc.UpsertCategory("Python", 128, 64); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if _, err := svc.UpsertCategory("Python", 128, 64); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	if err := db.DB.Model(&db.Category{}).Where("name = ?", "Python").Count(&count).Error; err != nil {
		t.Fatalf("failed to count categories: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one Python row, got %d", count)
	}

	var stored db.Category
	if err := db.DB.Where("name = ?", "Python").First(&stored).Error; err != nil {
		t.Fatalf("failed to load category: %v", err)
	}
	if stored.Views != 128 || stored.Likes != 64 {
		t.Fatalf("expected views=128 likes=64, got views=%d likes=%d", stored.Views, stored.Likes)
	}
}

func TestUpsertCategoryOverwritesCounters(t *testing.T) {
	cleanup := setupCatalogTestDB(t)
	defer cleanup()

	svc := NewCatalogService(db.DB)
	if _, err := svc.UpsertCategory("Django", 64, 32); err != nil {
		t.Fatalf("seed upsert failed: %v", err)
	}

	updated, err := svc.UpsertCategory("Django", 10, 5)
	if err != nil {
		t.Fatalf("overwrite upsert failed: %v", err)
	}
	if updated.Views != 10 || updated.Likes != 5 {
		t.Fatalf("expected last write to win, got views=%d likes=%d", updated.Views, updated.Likes)
	}
}

func TestUpsertCategoryRejectsEmptySlug(t *testing.T) {
	cleanup := setupCatalogTestDB(t)
	defer cleanup()

	svc := NewCatalogService(db.DB)
	for _, name := range []string{"", "   ", "!!!"} {
		if _, err := svc.UpsertCategory(name, 0, 0); !errors.Is(err, ErrInvalidCategoryName) {
			t.Fatalf("UpsertCategory(%q) error = %v, want ErrInvalidCategoryName", name, err)
		}
	}
}

func TestUpsertPageNormalizesURL(t *testing.T) {
	cleanup := setupCatalogTestDB(t)
	defer cleanup()

	svc := NewCatalogService(db.DB)
	category, err := svc.UpsertCategory("Python", 0, 0)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	bare, err := svc.UpsertPage(category, "X", "example.com", 0)
	if err != nil {
		t.Fatalf("UpsertPage returned error: %v", err)
	}
	if bare.URL != "http://example.com" {
		t.Fatalf("expected http:// prefix, got %q", bare.URL)
	}

	secure, err := svc.UpsertPage(category, "Y", "https://example.com", 0)
	if err != nil {
		t.Fatalf("UpsertPage returned error: %v", err)
	}
	if secure.URL != "https://example.com" {
		t.Fatalf("expected https URL unchanged, got %q", secure.URL)
	}
}

func TestUpsertPageIsConvergent(t *testing.T) {
	cleanup := setupCatalogTestDB(t)
	defer cleanup()

	svc := NewCatalogService(db.DB)
	category, err := svc.UpsertCategory("Python", 0, 0)
	if err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	if _, err := svc.UpsertPage(category, "Official Python Tutorial", "docs.python.org", 128); err != nil {
		t.Fatalf("first page upsert failed: %v", err)
	}
	if _, err := svc.UpsertPage(category, "Official Python Tutorial", "docs.python.org/3", 64); err != nil {
		t.Fatalf("second page upsert failed: %v", err)
	}

	var count int64
	if err := db.DB.Model(&db.Page{}).Where("category_id = ?", category.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count pages: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one page row, got %d", count)
	}

	var stored db.Page
	if err := db.DB.Where("category_id = ? AND title = ?", category.ID, "Official Python Tutorial").First(&stored).Error; err != nil {
		t.Fatalf("failed to load page: %v", err)
	}
	if stored.URL != "http://docs.python.org/3" || stored.Views != 64 {
		t.Fatalf("expected overwritten url/views, got url=%q views=%d", stored.URL, stored.Views)
	}
}

func TestUpsertPageRefusesMissingCategory(t *testing.T) {
	cleanup := setupCatalogTestDB(t)
	defer cleanup()

	svc := NewCatalogService(db.DB)

	if _, err := svc.UpsertPage(nil, "X", "example.com", 0); !errors.Is(err, ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired for nil category, got %v", err)
	}
	if _, err := svc.UpsertPage(&db.Category{}, "X", "example.com", 0); !errors.Is(err, ErrCategoryRequired) {
		t.Fatalf("expected ErrCategoryRequired for unsaved category, got %v", err)
	}

	var count int64
	if err := db.DB.Model(&db.Page{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count pages: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no pages persisted, got %d", count)
	}
}

func TestSuggestCategories(t *testing.T) {
	cleanup := setupCatalogTestDB(t)
	defer cleanup()

	svc := NewCatalogService(db.DB)
	for _, name := range []string{"Python", "PHP", "Perl", "Programming", "Django"} {
		if _, err := svc.UpsertCategory(name, 0, 0); err != nil {
			t.Fatalf("failed to seed %q: %v", name, err)
		}
	}

	matches, err := svc.SuggestCategories("P", 8)
	if err != nil {
		t.Fatalf("SuggestCategories returned error: %v", err)
	}
	if len(matches) != 4 {
		t.Fatalf("expected 4 matches for prefix P, got %d", len(matches))
	}

	capped, err := svc.SuggestCategories("P", 2)
	if err != nil {
		t.Fatalf("SuggestCategories returned error: %v", err)
	}
	if len(capped) != 2 {
		t.Fatalf("expected cap of 2 matches, got %d", len(capped))
	}

	empty, err := svc.SuggestCategories("", 8)
	if err != nil {
		t.Fatalf("SuggestCategories returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no matches for empty prefix, got %d", len(empty))
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"example.com":         "http://example.com",
		"http://example.com":  "http://example.com",
		"https://example.com": "https://example.com",
		"  example.com ":      "http://example.com",
		"":                    "",
	}
	for in, want := range cases {
		if got := NormalizeURL(in); got != want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

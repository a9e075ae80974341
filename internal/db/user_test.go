package db

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	DB = gdb

	return func() {
		sqlDB, err := DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestEnsureUserCreatesHashedAccount(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := EnsureUser("admin", "admin123"); err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("expected user persisted: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("admin123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestEnsureUserSkipsBlankOrExisting(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	if err := EnsureUser("", ""); err != nil {
		t.Fatalf("blank credentials should be a no-op, got %v", err)
	}

	if err := EnsureUser("admin", "first"); err != nil {
		t.Fatalf("seed EnsureUser failed: %v", err)
	}
	if err := EnsureUser("admin", "second"); err != nil {
		t.Fatalf("repeat EnsureUser failed: %v", err)
	}

	var count int64
	DB.Model(&User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one user, got %d", count)
	}

	var user User
	DB.Where("username = ?", "admin").First(&user)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("first")); err != nil {
		t.Fatal("existing account must keep its original password")
	}
}

package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is a registered account. Passwords are stored as bcrypt hashes.
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Email    string
	Password string `gorm:"not null"`
}

// UserProfile carries the optional public bits of an account.
type UserProfile struct {
	gorm.Model
	UserID  uint `gorm:"uniqueIndex;not null"`
	Website string
	Picture string
}

// EnsureUser creates a bcrypt-hashed account when both username and password
// are non-empty and no account with that username exists yet.
func EnsureUser(username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return DB.Create(&User{Username: trimmedUser, Password: string(hashed)}).Error
	}

	return nil
}

package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
)

// CreateUser inserts a new account.
func CreateUser(user *model.User) error {
	return db.Create(user).Error
}

// GetUserByID returns a user, or nil when absent.
func GetUserByID(userID uint) (*model.User, error) {
	var user model.User
	err := db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByIdentifier looks a user up by username or email.
func GetUserByIdentifier(identifier string) (*model.User, error) {
	var user model.User
	err := db.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail looks a user up by email.
func GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether a username is taken.
func UsernameExists(username string) (bool, error) {
	var count int64
	err := db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// EmailExists reports whether an email is registered.
func EmailExists(email string) (bool, error) {
	var count int64
	err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

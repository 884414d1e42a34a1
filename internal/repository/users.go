package repository

import (
	"errors"  // Error matching
	"strings" // Username normalization

	"github.com/SarahOester/AWP-Exam-assignment/internal/domain" // Importing domain models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// FindUserByUsername fetches a user by username, ErrNotFound when unknown
func FindUserByUsername(db *gorm.DB, username string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser hashes the password and inserts the user. A taken username is
// detected by the unique constraint on insert, not by a pre-check query,
// so concurrent registrations cannot both succeed.
func CreateUser(db *gorm.DB, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &ValidationError{Fields: map[string]string{"username": "You need a username"}}
	}
	// Hash the password before storage
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{Username: username, Password: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &user, nil
}

package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey"`      // Primary key
	Username  string    `gorm:"unique;not null"` // Unique username
	Password  string    `gorm:"not null"`        // Hashed password
	CreatedAt time.Time // Timestamp of registration
	UpdatedAt time.Time // Timestamp of last change
	// One-to-one relationship with Profile; nil until the user creates one
	Profile *Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

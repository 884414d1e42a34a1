package repository

import (
	"path/filepath"
	"testing"

	"github.com/SarahOester/AWP-Exam-assignment/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a throwaway SQLite database with the application schema
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Profile{}))
	return db
}

// seedUser registers a user through the repository and returns it
func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user, err := CreateUser(db, username, "password123")
	require.NoError(t, err)
	return user
}

package verification

import (
	"fmt"
	"testing"
	"time"

	"certvault/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every session on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Certificate{},
		&models.Domain{},
		&models.RankHistory{},
		&models.BlockchainVerification{},
	))

	return db
}

// createTestUser inserts a user with its empty profile
func createTestUser(t *testing.T, db *gorm.DB, firstName, lastName string) *models.User {
	t.Helper()

	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     fmt.Sprintf("%s.%s@example.com", firstName, lastName),
		Password:  "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.UserProfile{UserID: user.ID, JoinDate: time.Now()}).Error)
	return user
}

// fakeExtractor returns canned text without touching tesseract
type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(data []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

package services

import (
	"context"
	"fmt"
	"testing"

	"biblioteca-api/internal/adapters/persistence/models"
	"biblioteca-api/internal/adapters/persistence/repositories"
	"biblioteca-api/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test. The
// shared-cache DSN keyed on the test name keeps the schema alive
// across pooled connections without leaking between tests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Port:    "3000",
		JWT: config.JWTConfig{
			Secret:       "test-secret",
			ExpiresHours: 1,
		},
	}
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewLoanRepository(db),
		testConfig(),
	)
}

func newBookService(db *gorm.DB) *BookService {
	return NewBookService(
		repositories.NewBookRepository(db),
		repositories.NewLoanRepository(db),
	)
}

func newLoanService(db *gorm.DB) *LoanService {
	return NewLoanService(
		repositories.NewLoanRepository(db),
		repositories.NewBookRepository(db),
		repositories.NewUserRepository(db),
	)
}

func createTestUser(t *testing.T, db *gorm.DB, email, studentID string) *models.User {
	t.Helper()

	user := &models.User{
		Name:      "Test User",
		Email:     email,
		Password:  "not-a-real-hash",
		StudentID: studentID,
		MaxLoans:  models.DefaultMaxLoans,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, isbn string, copies int) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:           "Test Book " + isbn,
		Author:          "Test Author",
		ISBN:            isbn,
		TotalCopies:     copies,
		AvailableCopies: copies,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func ctx() context.Context {
	return context.Background()
}

package repositories

import (
	"context"
	"time"

	"biblioteca-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByStudentID(ctx context.Context, studentID string) (bool, error)
}

// BookFilter holds the optional catalog search filters. String fields
// are case-insensitive substring matches; Available nil means no
// availability filter.
type BookFilter struct {
	Category  string
	Author    string
	Title     string
	Available *bool
}

// BookRepository defines book repository interface
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	List(ctx context.Context, filter *BookFilter) ([]*models.Book, error)
}

// LoanSummary aggregates a user's loans over the full filtered set.
type LoanSummary struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Returned int64 `json:"returned"`
	Overdue  int64 `json:"overdue"`
}

// LoanRepository defines loan repository interface.
// Issue and Return are the two transactional units of the ledger: each
// wraps its paired writes in a single database transaction so the
// availability counter never observes a torn state.
type LoanRepository interface {
	GetByIDForUser(ctx context.Context, id, userID uint) (*models.Loan, error)
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	HasActiveLoan(ctx context.Context, userID, bookID uint) (bool, error)
	ListActiveByBook(ctx context.Context, bookID uint) ([]*models.Loan, error)
	ListByUser(ctx context.Context, userID uint, status string, offset, limit int) ([]*models.Loan, int64, error)
	Summary(ctx context.Context, userID uint, status string, now time.Time) (*LoanSummary, error)
	Issue(ctx context.Context, loan *models.Loan) error
	Return(ctx context.Context, loan *models.Loan) error
}

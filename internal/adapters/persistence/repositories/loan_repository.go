package repositories

import (
	"context"
	"time"

	"biblioteca-api/internal/adapters/persistence/models"
	"biblioteca-api/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// GetByIDForUser gets a loan by ID, scoped to its owner. A loan that
// exists but belongs to someone else comes back as ErrRecordNotFound,
// so callers cannot tell foreign loans from nonexistent ones.
func (r *loanRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("id = ? AND user_id = ?", id, userID).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// CountActiveByUser counts a user's active loans
func (r *loanRepository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("user_id = ? AND status = ?", userID, models.LoanStatusActive).
		Count(&count).Error
	return count, err
}

// CountOverdue counts active loans past their due date
func (r *loanRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ? AND due_date < ?", models.LoanStatusActive, now).
		Count(&count).Error
	return count, err
}

// HasActiveLoan checks whether the user already holds this book
func (r *loanRepository) HasActiveLoan(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, models.LoanStatusActive).
		Count(&count).Error
	return count > 0, err
}

// ListActiveByBook lists a book's active loans with borrower info
func (r *loanRepository) ListActiveByBook(ctx context.Context, bookID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ? AND status = ?", bookID, models.LoanStatusActive).
		Order("loan_date DESC").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}

// ListByUser lists a user's loans, most recent first, joined with the
// book, optionally filtered by status, with the total count of the
// filtered set.
func (r *loanRepository) ListByUser(ctx context.Context, userID uint, status string, offset, limit int) ([]*models.Loan, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Loan{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var loans []*models.Loan
	err := query.
		Preload("Book").
		Order("loan_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

// Summary aggregates over the FULL filtered set, not the current page.
func (r *loanRepository) Summary(ctx context.Context, userID uint, status string, now time.Time) (*LoanSummary, error) {
	query := r.db.WithContext(ctx).Model(&models.Loan{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var summary LoanSummary
	err := query.Select(
		"COUNT(*) AS total, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS returned, "+
			"COALESCE(SUM(CASE WHEN status = ? AND due_date < ? THEN 1 ELSE 0 END), 0) AS overdue",
		models.LoanStatusActive,
		models.LoanStatusReturned,
		models.LoanStatusActive, now,
	).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Issue creates the loan and decrements the book's available copies as
// one all-or-nothing unit. The decrement is conditional on
// available_copies > 0 so two concurrent issues on the last copy
// cannot both succeed; the loser aborts with ErrBookUnavailable and
// the insert rolls back.
func (r *loanRepository) Issue(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(loan).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Book{}).
			Where("id = ? AND available_copies > 0", loan.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrBookUnavailable
		}
		return nil
	})
}

// Return marks the loan returned and increments the book's available
// copies as one all-or-nothing unit. The status guard makes a second
// concurrent return lose with ErrLoanAlreadyReturned instead of
// incrementing twice.
func (r *loanRepository) Return(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Loan{}).
			Where("id = ? AND status = ?", loan.ID, models.LoanStatusActive).
			Updates(map[string]interface{}{
				"return_date": loan.ReturnDate,
				"status":      models.LoanStatusReturned,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrLoanAlreadyReturned
		}

		return tx.Model(&models.Book{}).
			Where("id = ?", loan.BookID).
			UpdateColumn("available_copies", gorm.Expr("available_copies + 1")).Error
	})
}

package services

import (
	"context"
	"errors"
	"time"

	"biblioteca-api/internal/adapters/persistence/models"
	"biblioteca-api/internal/adapters/persistence/repositories"
	"biblioteca-api/internal/core/domain"

	"gorm.io/gorm"
)

// LoanPeriodDays is the fixed loan window
const LoanPeriodDays = 14

// LoanService handles the loan ledger business logic
type LoanService struct {
	loanRepo repositories.LoanRepository
	bookRepo repositories.BookRepository
	userRepo repositories.UserRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
) *LoanService {
	return &LoanService{
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		userRepo: userRepo,
	}
}

// Issue creates a loan for the user on the book. Checks run in order
// and the first failure wins: book exists, copies available, user
// exists, user below their loan cap, user not already holding the
// book. The insert and the availability decrement commit or roll back
// together.
func (s *LoanService) Issue(ctx context.Context, userID, bookID uint) (*models.Loan, *models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrBookNotFound
		}
		return nil, nil, err
	}

	if book.AvailableCopies <= 0 {
		return nil, nil, domain.ErrBookUnavailable
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrUserNotFound
		}
		return nil, nil, err
	}

	active, err := s.loanRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if active >= int64(user.MaxLoans) {
		return nil, nil, &domain.LoanLimitError{Active: active, Limit: user.MaxLoans}
	}

	borrowed, err := s.loanRepo.HasActiveLoan(ctx, userID, bookID)
	if err != nil {
		return nil, nil, err
	}
	if borrowed {
		return nil, nil, domain.ErrAlreadyBorrowed
	}

	now := time.Now()
	loan := &models.Loan{
		UserID:   userID,
		BookID:   bookID,
		LoanDate: now,
		DueDate:  now.AddDate(0, 0, LoanPeriodDays),
		Status:   models.LoanStatusActive,
	}

	if err := s.loanRepo.Issue(ctx, loan); err != nil {
		return nil, nil, err
	}

	// Re-read for an accurate post-decrement snapshot.
	book, err = s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, nil, err
	}

	return loan, book, nil
}

// ReturnResult represents the outcome of a return
type ReturnResult struct {
	Loan     *models.Loan
	Book     *models.Book
	Late     bool
	DaysLate int
}

// Return marks the user's loan returned and releases the copy. A loan
// belonging to another user is reported as not found.
func (s *LoanService) Return(ctx context.Context, loanID, userID uint) (*ReturnResult, error) {
	loan, err := s.loanRepo.GetByIDForUser(ctx, loanID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	if loan.Status != models.LoanStatusActive {
		return nil, domain.ErrLoanAlreadyReturned
	}

	now := time.Now()
	late := now.After(loan.DueDate)
	daysLate := loan.DaysLate(now)

	loan.ReturnDate = &now
	loan.Status = models.LoanStatusReturned

	if err := s.loanRepo.Return(ctx, loan); err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByID(ctx, loan.BookID)
	if err != nil {
		return nil, err
	}

	return &ReturnResult{
		Loan:     loan,
		Book:     book,
		Late:     late,
		DaysLate: daysLate,
	}, nil
}

// ListOutput represents a page of a user's loans
type ListOutput struct {
	Loans   []*models.LoanResponse
	Total   int64
	Summary *repositories.LoanSummary
}

// List returns the user's loans, most recent first, joined with the
// book and annotated with overdue state. The summary aggregates over
// the full filtered set even though the list itself is paginated.
func (s *LoanService) List(ctx context.Context, userID uint, status string, offset, limit int) (*ListOutput, error) {
	// Anything other than the two known statuses means no filter.
	if status != models.LoanStatusActive && status != models.LoanStatusReturned {
		status = ""
	}

	loans, total, err := s.loanRepo.ListByUser(ctx, userID, status, offset, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary, err := s.loanRepo.Summary(ctx, userID, status, now)
	if err != nil {
		return nil, err
	}

	items := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		items = append(items, loan.ToResponse(now))
	}

	return &ListOutput{
		Loans:   items,
		Total:   total,
		Summary: summary,
	}, nil
}

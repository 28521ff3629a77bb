package domain

import (
	"errors"
	"fmt"
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStudentIDTaken     = errors.New("student id already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Book errors
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrISBNTaken       = errors.New("isbn already registered")
	ErrBookUnavailable = errors.New("book unavailable")
)

// Loan errors
var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrAlreadyBorrowed     = errors.New("book already borrowed")
	ErrLoanAlreadyReturned = errors.New("loan already returned")
)

// LoanLimitError is returned when a user already holds the maximum
// number of concurrent loans. It carries the counts so the handler can
// report them.
type LoanLimitError struct {
	Active int64
	Limit  int
}

func (e *LoanLimitError) Error() string {
	return fmt.Sprintf("loan limit reached: %d active loans, limit is %d", e.Active, e.Limit)
}

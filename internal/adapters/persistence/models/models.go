package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Loan status values
const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
)

// DefaultMaxLoans is the concurrent loan cap applied to new users.
const DefaultMaxLoans = 2

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	StudentID string    `gorm:"uniqueIndex;size:50;not null" json:"studentId"`
	MaxLoans  int       `gorm:"not null;default:2" json:"maxLoans"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	StudentID   string    `json:"studentId"`
	MaxLoans    int       `json:"maxLoans"`
	ActiveLoans *int64    `json:"activeLoans,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		StudentID: u.StudentID,
		MaxLoans:  u.MaxLoans,
		CreatedAt: u.CreatedAt,
	}
}

// Book represents books table
// Invariant: 0 <= AvailableCopies <= TotalCopies. AvailableCopies is
// only ever mutated by the loan ledger, inside the issue/return
// transactions.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Author          string    `gorm:"size:100;not null" json:"author"`
	ISBN            string    `gorm:"uniqueIndex;size:20;not null" json:"isbn"`
	TotalCopies     int       `gorm:"not null;default:1" json:"totalCopies"`
	AvailableCopies int       `gorm:"not null;default:1" json:"availableCopies"`
	Category        *string   `gorm:"size:50" json:"category"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Book) TableName() string {
	return "books"
}

// Loan represents loans table
// A loan is mutated exactly once, at return time. Rows are never deleted.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"userId"`
	BookID     uint       `gorm:"not null;index" json:"bookId"`
	LoanDate   time.Time  `gorm:"not null" json:"loanDate"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
	Status     string     `gorm:"size:20;not null;default:'active';index" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Book *Book `gorm:"foreignKey:BookID" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsOverdue reports whether the loan is active and past its due date.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.Status == LoanStatusActive && now.After(l.DueDate)
}

// DaysLate returns the number of whole days past the due date,
// rounded up. Zero when the due date has not passed.
func (l *Loan) DaysLate(now time.Time) int {
	if !now.After(l.DueDate) {
		return 0
	}
	return int(math.Ceil(now.Sub(l.DueDate).Hours() / 24))
}

// LoanBook is the joined book view attached to each loan item.
type LoanBook struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ISBN     string  `json:"isbn"`
	Category *string `json:"category"`
}

// LoanResponse DTO
type LoanResponse struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"userId"`
	BookID     uint       `json:"bookId"`
	LoanDate   time.Time  `json:"loanDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
	Status     string     `json:"status"`
	Overdue    bool       `json:"overdue"`
	DaysLate   int        `json:"daysLate"`
	Book       *LoanBook  `json:"book,omitempty"`
}

// ToResponse builds the loan view, annotating overdue state as of now.
func (l *Loan) ToResponse(now time.Time) *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     l.Status,
		Overdue:    l.IsOverdue(now),
	}
	if resp.Overdue {
		resp.DaysLate = l.DaysLate(now)
	}
	if l.Book != nil {
		resp.Book = &LoanBook{
			ID:       l.Book.ID,
			Title:    l.Book.Title,
			Author:   l.Book.Author,
			ISBN:     l.Book.ISBN,
			Category: l.Book.Category,
		}
	}
	return resp
}

// AutoMigrate creates the three tables if they do not exist
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Book{},
		&Loan{},
	)
}

package services

import (
	"context"
	"errors"
	"strings"

	"biblioteca-api/internal/adapters/persistence/models"
	"biblioteca-api/internal/adapters/persistence/repositories"
	"biblioteca-api/internal/core/domain"

	"gorm.io/gorm"
)

// BookService handles book catalog business logic
type BookService struct {
	bookRepo repositories.BookRepository
	loanRepo repositories.LoanRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository, loanRepo repositories.LoanRepository) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
	}
}

// AddBookInput represents catalog-add input
type AddBookInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	TotalCopies int    `json:"totalCopies"`
	Category    string `json:"category"`
}

// Add creates a new book with all copies available. The ISBN pre-check
// gives the friendly conflict; the duplicate-key translation on insert
// catches the race where two concurrent adds both pass the pre-check.
func (s *BookService) Add(ctx context.Context, input *AddBookInput) (*models.Book, error) {
	isbn := strings.TrimSpace(input.ISBN)

	exists, err := s.bookRepo.ExistsByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrISBNTaken
	}

	book := &models.Book{
		Title:           strings.TrimSpace(input.Title),
		Author:          strings.TrimSpace(input.Author),
		ISBN:            isbn,
		TotalCopies:     input.TotalCopies,
		AvailableCopies: input.TotalCopies,
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		book.Category = &category
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrISBNTaken
		}
		return nil, err
	}

	return book, nil
}

// List lists books matching the optional filters, ordered by title
func (s *BookService) List(ctx context.Context, filter *repositories.BookFilter) ([]*models.Book, error) {
	return s.bookRepo.List(ctx, filter)
}

// Get returns a book with its active loans (who currently holds it)
func (s *BookService) Get(ctx context.Context, id uint) (*models.Book, []*models.Loan, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrBookNotFound
		}
		return nil, nil, err
	}

	loans, err := s.loanRepo.ListActiveByBook(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return book, loans, nil
}

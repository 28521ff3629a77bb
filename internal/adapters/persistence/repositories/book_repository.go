package repositories

import (
	"context"
	"strings"

	"biblioteca-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetByID gets a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ExistsByISBN checks if a book with this ISBN exists
func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("isbn = ?", isbn).Count(&count).Error
	return count > 0, err
}

// List lists books matching the filter, ordered by title.
// LOWER() on both sides keeps the substring match case-insensitive
// regardless of column collation.
func (r *bookRepository) List(ctx context.Context, filter *BookFilter) ([]*models.Book, error) {
	query := r.db.WithContext(ctx).Model(&models.Book{})

	if filter.Category != "" {
		query = query.Where("LOWER(category) LIKE ?", contains(filter.Category))
	}
	if filter.Author != "" {
		query = query.Where("LOWER(author) LIKE ?", contains(filter.Author))
	}
	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", contains(filter.Title))
	}
	if filter.Available != nil {
		if *filter.Available {
			query = query.Where("available_copies > 0")
		} else {
			query = query.Where("available_copies = 0")
		}
	}

	var books []*models.Book
	if err := query.Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func contains(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

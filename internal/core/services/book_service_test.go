package services

import (
	"testing"

	"biblioteca-api/internal/adapters/persistence/models"
	"biblioteca-api/internal/adapters/persistence/repositories"
	"biblioteca-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookServiceAdd(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	book, err := svc.Add(ctx(), &AddBookInput{
		Title:       "Clean Architecture",
		Author:      "Robert C. Martin",
		ISBN:        "978-0134494166",
		TotalCopies: 3,
		Category:    "tecnologia",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies, "all copies start available")
	require.NotNil(t, book.Category)
	assert.Equal(t, "tecnologia", *book.Category)
}

func TestBookServiceAddWithoutCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	book, err := svc.Add(ctx(), &AddBookInput{
		Title:       "Untitled Essays",
		Author:      "Anonymous",
		ISBN:        "978-0000000001",
		TotalCopies: 1,
	})
	require.NoError(t, err)
	assert.Nil(t, book.Category)
}

func TestBookServiceAddDuplicateISBN(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	input := &AddBookInput{
		Title:       "Clean Architecture",
		Author:      "Robert C. Martin",
		ISBN:        "978-0134494166",
		TotalCopies: 3,
	}
	_, err := svc.Add(ctx(), input)
	require.NoError(t, err)

	_, err = svc.Add(ctx(), input)
	assert.ErrorIs(t, err, domain.ErrISBNTaken)
}

func TestBookServiceListFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	seed := []struct {
		title, author, isbn, category string
		copies                        int
	}{
		{"História do Brasil", "João Santos", "978-0000000001", "história", 2},
		{"Matemática Divertida", "Ana Costa", "978-0000000002", "educação", 1},
		{"Aventuras na Programação", "Maria Silva", "978-0000000003", "tecnologia", 1},
	}
	for _, s := range seed {
		_, err := svc.Add(ctx(), &AddBookInput{
			Title:       s.title,
			Author:      s.author,
			ISBN:        s.isbn,
			TotalCopies: s.copies,
			Category:    s.category,
		})
		require.NoError(t, err)
	}

	// Case-insensitive substring match on author.
	books, err := svc.List(ctx(), &repositories.BookFilter{Author: "SILVA"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Aventuras na Programação", books[0].Title)

	// Substring match on title.
	books, err = svc.List(ctx(), &repositories.BookFilter{Title: "matemática"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Matemática Divertida", books[0].Title)

	// No filter lists everything, ordered by title.
	books, err = svc.List(ctx(), &repositories.BookFilter{})
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Aventuras na Programação", books[0].Title)
	assert.Equal(t, "História do Brasil", books[1].Title)
	assert.Equal(t, "Matemática Divertida", books[2].Title)
}

func TestBookServiceListAvailableFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)
	loanSvc := newLoanService(db)
	user := createTestUser(t, db, "reader@example.com", "EST100")

	borrowed, err := svc.Add(ctx(), &AddBookInput{
		Title: "Borrowed Out", Author: "A", ISBN: "978-0000000001", TotalCopies: 1,
	})
	require.NoError(t, err)
	_, err = svc.Add(ctx(), &AddBookInput{
		Title: "On The Shelf", Author: "B", ISBN: "978-0000000002", TotalCopies: 1,
	})
	require.NoError(t, err)

	_, _, err = loanSvc.Issue(ctx(), user.ID, borrowed.ID)
	require.NoError(t, err)

	available := true
	books, err := svc.List(ctx(), &repositories.BookFilter{Available: &available})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "On The Shelf", books[0].Title)

	available = false
	books, err = svc.List(ctx(), &repositories.BookFilter{Available: &available})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Borrowed Out", books[0].Title)
}

func TestBookServiceGet(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)
	loanSvc := newLoanService(db)
	user := createTestUser(t, db, "reader@example.com", "EST100")
	book := createTestBook(t, db, "978-0000000001", 2)

	_, _, err := loanSvc.Issue(ctx(), user.ID, book.ID)
	require.NoError(t, err)

	got, activeLoans, err := svc.Get(ctx(), book.ID)
	require.NoError(t, err)

	assert.Equal(t, book.ID, got.ID)
	assert.Equal(t, 1, got.AvailableCopies)
	require.Len(t, activeLoans, 1)
	require.NotNil(t, activeLoans[0].User, "borrower is joined in")
	assert.Equal(t, user.StudentID, activeLoans[0].User.StudentID)
}

func TestBookServiceGetExcludesReturnedLoans(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)
	loanSvc := newLoanService(db)
	user := createTestUser(t, db, "reader@example.com", "EST100")
	book := createTestBook(t, db, "978-0000000001", 1)

	loan, _, err := loanSvc.Issue(ctx(), user.ID, book.ID)
	require.NoError(t, err)
	_, err = loanSvc.Return(ctx(), loan.ID, user.ID)
	require.NoError(t, err)

	_, activeLoans, err := svc.Get(ctx(), book.ID)
	require.NoError(t, err)
	assert.Empty(t, activeLoans)
}

func TestBookServiceGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)

	_, _, err := svc.Get(ctx(), 99999)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBookServiceModelInvariant(t *testing.T) {
	db := setupTestDB(t)
	svc := newBookService(db)
	loanSvc := newLoanService(db)
	user := createTestUser(t, db, "reader@example.com", "EST100")

	book, err := svc.Add(ctx(), &AddBookInput{
		Title: "Single Copy", Author: "A", ISBN: "978-0000000001", TotalCopies: 1,
	})
	require.NoError(t, err)

	loan, _, err := loanSvc.Issue(ctx(), user.ID, book.ID)
	require.NoError(t, err)
	_, err = loanSvc.Return(ctx(), loan.ID, user.ID)
	require.NoError(t, err)

	var final models.Book
	require.NoError(t, db.First(&final, book.ID).Error)
	assert.Equal(t, final.TotalCopies, final.AvailableCopies, "full cycle restores availability")
}

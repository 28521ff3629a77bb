package handlers

import (
	"errors"
	"strings"

	"biblioteca-api/internal/adapters/persistence/repositories"
	"biblioteca-api/internal/core/domain"
	"biblioteca-api/internal/core/services"
	"biblioteca-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles book catalog requests
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// List godoc
// @Summary List books
// @Description Lists books ordered by title, optionally filtered
// @Tags books
// @Produce json
// @Param category query string false "Category substring, case-insensitive"
// @Param author query string false "Author substring, case-insensitive"
// @Param title query string false "Title substring, case-insensitive"
// @Param available query bool false "Only books with (or without) free copies"
// @Success 200 {object} map[string]interface{}
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	filter := &repositories.BookFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Author:   strings.TrimSpace(c.Query("author")),
		Title:    strings.TrimSpace(c.Query("title")),
	}

	// Anything other than "true"/"false" means no availability filter.
	switch c.Query("available") {
	case "true":
		v := true
		filter.Available = &v
	case "false":
		v := false
		filter.Available = &v
	}

	books, err := h.bookService.List(c.UserContext(), filter)
	if err != nil {
		return response.InternalServerError(c, "could not list books")
	}

	return c.JSON(fiber.Map{
		"books": books,
		"total": len(books),
		"filters": fiber.Map{
			"category":  nullable(filter.Category),
			"author":    nullable(filter.Author),
			"title":     nullable(filter.Title),
			"available": filter.Available,
		},
	})
}

// Get godoc
// @Summary Get a book
// @Description Returns a book with its active loans and borrowers
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid book id", "book id must be a positive integer")
	}

	book, activeLoans, err := h.bookService.Get(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return response.NotFound(c, "book not found", "no book exists with this id")
		}
		return response.InternalServerError(c, "could not load book")
	}

	borrowers := make([]fiber.Map, 0, len(activeLoans))
	for _, loan := range activeLoans {
		item := fiber.Map{
			"loanId":   loan.ID,
			"loanDate": loan.LoanDate,
			"dueDate":  loan.DueDate,
		}
		if loan.User != nil {
			item["user"] = fiber.Map{
				"id":        loan.User.ID,
				"name":      loan.User.Name,
				"studentId": loan.User.StudentID,
			}
		}
		borrowers = append(borrowers, item)
	}

	return c.JSON(fiber.Map{
		"book":        book,
		"activeLoans": borrowers,
	})
}

// Create godoc
// @Summary Add a book
// @Description Adds a book to the catalog with all copies available
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.AddBookInput true "Book data"
// @Success 201 {object} models.Book
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var input services.AddBookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body", "the request body must be valid JSON")
	}

	if input.TotalCopies == 0 {
		input.TotalCopies = 1
	}

	if msg := validateAddBookInput(&input); msg != "" {
		return response.BadRequest(c, "validation failed", msg)
	}

	book, err := h.bookService.Add(c.UserContext(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrISBNTaken) {
			return response.Conflict(c, "isbn already registered", "a book with this isbn already exists")
		}
		return response.InternalServerError(c, "could not add book")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"book": book})
}

func validateAddBookInput(input *services.AddBookInput) string {
	if len(strings.TrimSpace(input.Title)) < 2 {
		return "title must be at least 2 characters long"
	}
	if len(strings.TrimSpace(input.Author)) < 2 {
		return "author must be at least 2 characters long"
	}
	if strings.TrimSpace(input.ISBN) == "" {
		return "isbn is required"
	}
	if input.TotalCopies < 1 {
		return "totalCopies must be at least 1"
	}
	return ""
}

// nullable maps an empty string to JSON null when echoing filters.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

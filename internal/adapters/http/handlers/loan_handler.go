package handlers

import (
	"errors"
	"fmt"

	"biblioteca-api/internal/core/domain"
	"biblioteca-api/internal/core/services"
	"biblioteca-api/internal/pkg/pagination"
	"biblioteca-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan ledger requests
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

type createLoanInput struct {
	BookID uint `json:"bookId"`
}

// Create godoc
// @Summary Borrow a book
// @Description Issues a 14-day loan of the book to the authenticated user
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createLoanInput true "Book to borrow"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input createLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body", "the request body must be valid JSON")
	}
	if input.BookID == 0 {
		return response.BadRequest(c, "validation failed", "bookId is required")
	}

	loan, book, err := h.loanService.Issue(c.UserContext(), userID, input.BookID)
	if err != nil {
		var limitErr *domain.LoanLimitError
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "book not found", "no book exists with this id")
		case errors.Is(err, domain.ErrBookUnavailable):
			return response.Conflict(c, "book unavailable", "no copies of this book are currently available")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "user not found", "the authenticated user no longer exists")
		case errors.As(err, &limitErr):
			return response.Conflict(c, "loan limit reached",
				fmt.Sprintf("you already have %d active loans, the limit is %d", limitErr.Active, limitErr.Limit))
		case errors.Is(err, domain.ErrAlreadyBorrowed):
			return response.Conflict(c, "book already borrowed", "you already have an active loan for this book")
		default:
			return response.InternalServerError(c, "could not create loan")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"loan": loan,
		"book": fiber.Map{
			"id":              book.ID,
			"title":           book.Title,
			"availableCopies": book.AvailableCopies,
		},
	})
}

// List godoc
// @Summary List own loans
// @Description Lists the authenticated user's loans, most recent first
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(active, returned)
// @Param page query int false "Page number"
// @Param pageSize query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.ErrorBody
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	params := pagination.GetParams(c)
	status := c.Query("status")

	result, err := h.loanService.List(c.UserContext(), userID, status, params.Offset, params.PageSize)
	if err != nil {
		return response.InternalServerError(c, "could not list loans")
	}

	return c.JSON(fiber.Map{
		"loans":      result.Loans,
		"pagination": pagination.GetMeta(params, result.Total),
		"summary":    result.Summary,
	})
}

// Return godoc
// @Summary Return a book
// @Description Closes the loan and releases the copy back to the catalog
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /loans/{id}/return [put]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "invalid loan id", "loan id must be a positive integer")
	}

	result, err := h.loanService.Return(c.UserContext(), uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "loan not found", "no loan of yours exists with this id")
		case errors.Is(err, domain.ErrLoanAlreadyReturned):
			return response.Conflict(c, "loan already returned", "this loan has already been returned")
		default:
			return response.InternalServerError(c, "could not return loan")
		}
	}

	return c.JSON(fiber.Map{
		"loan": fiber.Map{
			"id":         result.Loan.ID,
			"userId":     result.Loan.UserID,
			"bookId":     result.Loan.BookID,
			"loanDate":   result.Loan.LoanDate,
			"dueDate":    result.Loan.DueDate,
			"returnDate": result.Loan.ReturnDate,
			"status":     result.Loan.Status,
			"late":       result.Late,
			"daysLate":   result.DaysLate,
		},
		"book": fiber.Map{
			"id":              result.Book.ID,
			"title":           result.Book.Title,
			"availableCopies": result.Book.AvailableCopies,
		},
	})
}

package handlers

import (
	"errors"
	"regexp"
	"strings"

	"biblioteca-api/internal/core/domain"
	"biblioteca-api/internal/core/services"
	"biblioteca-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account and returns it with a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.RegisterInput true "Registration data"
// @Success 201 {object} services.AuthResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body", "the request body must be valid JSON")
	}

	if msg := validateRegisterInput(&input); msg != "" {
		return response.BadRequest(c, "validation failed", msg)
	}

	result, err := h.authService.Register(c.UserContext(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return response.Conflict(c, "email already registered", "a user with this email already exists")
		case errors.Is(err, domain.ErrStudentIDTaken):
			return response.Conflict(c, "student id already registered", "a user with this student id already exists")
		default:
			return response.InternalServerError(c, "could not register user")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Login godoc
// @Summary Log in
// @Description Authenticates a user and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.LoginInput true "Credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body", "the request body must be valid JSON")
	}

	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return response.BadRequest(c, "validation failed", "email and password are required")
	}

	result, err := h.authService.Login(c.UserContext(), &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "invalid credentials", "email or password is incorrect")
		}
		return response.InternalServerError(c, "could not log in")
	}

	return c.JSON(result)
}

// Profile godoc
// @Summary Get own profile
// @Description Returns the authenticated user with their active loan count
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := h.authService.Profile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "user not found", "the authenticated user no longer exists")
		}
		return response.InternalServerError(c, "could not load profile")
	}

	return c.JSON(fiber.Map{"user": profile})
}

func validateRegisterInput(input *services.RegisterInput) string {
	if len(strings.TrimSpace(input.Name)) < 2 {
		return "name must be at least 2 characters long"
	}
	if !emailRegex.MatchString(strings.TrimSpace(input.Email)) {
		return "email must be a valid email address"
	}
	if len(input.Password) < 6 {
		return "password must be at least 6 characters long"
	}
	if strings.TrimSpace(input.StudentID) == "" {
		return "studentId is required"
	}
	return ""
}

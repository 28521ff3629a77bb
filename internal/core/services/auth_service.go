package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"biblioteca-api/internal/adapters/persistence/models"
	"biblioteca-api/internal/adapters/persistence/repositories"
	"biblioteca-api/internal/config"
	"biblioteca-api/internal/core/domain"
	"biblioteca-api/internal/pkg/jwt"
	"biblioteca-api/internal/pkg/password"

	"gorm.io/gorm"
)

// AuthService handles registration, login and profile lookups
type AuthService struct {
	userRepo repositories.UserRepository
	loanRepo repositories.LoanRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, loanRepo repositories.LoanRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		loanRepo: loanRepo,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StudentID string `json:"studentId"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Register registers a new user and issues a credential bound to it.
// Email and student ID uniqueness are checked independently so each
// violation reports its own field.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	exists, err = s.userRepo.ExistsByStudentID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrStudentIDTaken
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Password:  hashedPassword,
		StudentID: strings.TrimSpace(input.StudentID),
		MaxLoans:  models.DefaultMaxLoans,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpiresHours)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Name, user.Email)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Login authenticates a user by email and password. Unknown email and
// wrong password both come back as ErrInvalidCredentials so the
// response never reveals whether the email exists.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, s.cfg.JWT.Secret, s.cfg.JWT.ExpiresHours)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}, nil
}

// Profile returns the user's data with their current active loan count
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	activeLoans, err := s.loanRepo.CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	resp.ActiveLoans = &activeLoans
	return resp, nil
}

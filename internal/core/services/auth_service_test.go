package services

import (
	"testing"

	"biblioteca-api/internal/adapters/persistence/models"
	"biblioteca-api/internal/core/domain"
	"biblioteca-api/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	result, err := svc.Register(ctx(), &RegisterInput{
		Name:      "João Silva",
		Email:     "joao@example.com",
		Password:  "secret123",
		StudentID: "EST001",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "João Silva", result.User.Name)
	assert.Equal(t, "joao@example.com", result.User.Email)
	assert.Equal(t, "EST001", result.User.StudentID)
	assert.Equal(t, models.DefaultMaxLoans, result.User.MaxLoans)

	// The stored password is a bcrypt hash, not the plaintext.
	var stored models.User
	require.NoError(t, db.First(&stored, result.User.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, password.Verify("secret123", stored.Password))
}

func TestAuthServiceRegisterNormalizesEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	result, err := svc.Register(ctx(), &RegisterInput{
		Name:      "João Silva",
		Email:     "  JOAO@Example.COM ",
		Password:  "secret123",
		StudentID: "EST001",
	})
	require.NoError(t, err)
	assert.Equal(t, "joao@example.com", result.User.Email)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	input := &RegisterInput{
		Name:      "João Silva",
		Email:     "joao@example.com",
		Password:  "secret123",
		StudentID: "EST001",
	}
	_, err := svc.Register(ctx(), input)
	require.NoError(t, err)

	input.StudentID = "EST002"
	_, err = svc.Register(ctx(), input)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthServiceRegisterDuplicateStudentID(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(ctx(), &RegisterInput{
		Name:      "João Silva",
		Email:     "joao@example.com",
		Password:  "secret123",
		StudentID: "EST001",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx(), &RegisterInput{
		Name:      "Maria Souza",
		Email:     "maria@example.com",
		Password:  "secret123",
		StudentID: "EST001",
	})
	assert.ErrorIs(t, err, domain.ErrStudentIDTaken)
}

func TestAuthServiceLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(ctx(), &RegisterInput{
		Name:      "João Silva",
		Email:     "joao@example.com",
		Password:  "secret123",
		StudentID: "EST001",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx(), &LoginInput{
		Email:    "joao@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "joao@example.com", result.User.Email)
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(ctx(), &RegisterInput{
		Name:      "João Silva",
		Email:     "joao@example.com",
		Password:  "secret123",
		StudentID: "EST001",
	})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, wrongPassErr := svc.Login(ctx(), &LoginInput{
		Email:    "joao@example.com",
		Password: "wrong-password",
	})
	_, unknownEmailErr := svc.Login(ctx(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, wrongPassErr, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmailErr, domain.ErrInvalidCredentials)
}

func TestAuthServiceProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	loanSvc := newLoanService(db)

	result, err := svc.Register(ctx(), &RegisterInput{
		Name:      "João Silva",
		Email:     "joao@example.com",
		Password:  "secret123",
		StudentID: "EST001",
	})
	require.NoError(t, err)

	book := createTestBook(t, db, "978-0000000001", 1)
	_, _, err = loanSvc.Issue(ctx(), result.User.ID, book.ID)
	require.NoError(t, err)

	profile, err := svc.Profile(ctx(), result.User.ID)
	require.NoError(t, err)

	assert.Equal(t, "joao@example.com", profile.Email)
	require.NotNil(t, profile.ActiveLoans)
	assert.EqualValues(t, 1, *profile.ActiveLoans)
}

func TestAuthServiceProfileUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Profile(ctx(), 99999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

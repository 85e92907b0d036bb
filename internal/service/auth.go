package service

import (
	"errors"
	"strings"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/internal/repository"
	"github.com/Arison99/School-Management-System/pkg/jwtutil"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account creation and credential verification.
type AuthService struct {
	users    repository.UserRepository
	jwt      *jwtutil.JWTUtil
	validate *validator.Validate
}

// NewAuthService creates an AuthService.
func NewAuthService(users repository.UserRepository, jwt *jwtutil.JWTUtil) *AuthService {
	return &AuthService{
		users:    users,
		jwt:      jwt,
		validate: newValidator(),
	}
}

// SignupInput is the registration payload.
type SignupInput struct {
	Name      string `json:"name" validate:"required,min=2"`
	School    string `json:"school" validate:"required,min=2"`
	Institute string `json:"institute" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// LoginInput is the authentication payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup registers a new user and issues a token for it. Emails are
// stored lowercase and must be unique.
func (s *AuthService) Signup(in SignupInput) (*model.User, string, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.ByEmail(email); err == nil {
		return nil, "", apperr.UserExists()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:      strings.TrimSpace(in.Name),
		School:    strings.TrimSpace(in.School),
		Institute: in.Institute,
		Email:     email,
		Password:  string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(in LoginInput) (*model.User, string, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, "", err
	}

	user, err := s.users.ByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.InvalidCredentials()
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, "", apperr.InvalidCredentials()
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

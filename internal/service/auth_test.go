package service

import (
	"testing"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupInput {
	return SignupInput{
		Name:      "Jane Doe",
		School:    "Test Academy",
		Institute: "Secondary School",
		Email:     "jane@example.com",
		Password:  "secret123",
	}
}

func TestSignup(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), newTestJWT())

	user, token, err := svc.Signup(validSignup())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password, "password must be hashed")

	claims, err := newTestJWT().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestSignupNormalizesEmail(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), newTestJWT())

	in := validSignup()
	in.Email = "  Jane@Example.COM "
	user, _, err := svc.Signup(in)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), newTestJWT())

	_, _, err := svc.Signup(validSignup())
	require.NoError(t, err)

	in := validSignup()
	in.Name = "Someone Else"
	_, _, err = svc.Signup(in)
	assertCode(t, err, apperr.CodeUserExists)
}

func TestSignupValidation(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), newTestJWT())

	tests := []struct {
		name   string
		mutate func(*SignupInput)
		field  string
	}{
		{"missing name", func(in *SignupInput) { in.Name = "" }, "name"},
		{"short password", func(in *SignupInput) { in.Password = "123" }, "password"},
		{"bad email", func(in *SignupInput) { in.Email = "not-an-email" }, "email"},
		{"missing institute", func(in *SignupInput) { in.Institute = "" }, "institute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSignup()
			tt.mutate(&in)
			_, _, err := svc.Signup(in)
			ae := assertCode(t, err, apperr.CodeValidation)
			assert.Contains(t, ae.Fields, tt.field)
		})
	}
}

func TestLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), newTestJWT())

	created, _, err := svc.Signup(validSignup())
	require.NoError(t, err)

	user, token, err := svc.Login(LoginInput{Email: "jane@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := newTestJWT().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), newTestJWT())

	_, _, err := svc.Signup(validSignup())
	require.NoError(t, err)

	_, _, err = svc.Login(LoginInput{Email: "jane@example.com", Password: "wrongpass"})
	assertCode(t, err, apperr.CodeInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), newTestJWT())

	_, _, err := svc.Login(LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assertCode(t, err, apperr.CodeInvalidCredentials)
}

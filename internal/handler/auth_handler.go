package handler

import (
	"net/http"

	"github.com/Arison99/School-Management-System/internal/service"
	"github.com/Arison99/School-Management-System/pkg/logger"
	"github.com/Arison99/School-Management-System/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves signup and login.
type AuthHandler struct {
	svc *service.AuthService
	env string
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc *service.AuthService, env string) *AuthHandler {
	return &AuthHandler{svc: svc, env: env}
}

// Signup registers a new user and returns it with a token.
func (h *AuthHandler) Signup(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.SignupCounter.Inc()

	var in service.SignupInput
	if err := c.Bind(&in); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request data"})
	}

	user, token, err := h.svc.Signup(in)
	if err != nil {
		prometheus.RecordAuthError("signup_failed")
		return fail(c, h.env, err)
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User registered", zap.String("email", user.Email))
	return respond(c, http.StatusCreated, "User registered successfully", echo.Map{
		"user":  user,
		"token": token,
	})
}

// Login authenticates a user and returns it with a token.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var in service.LoginInput
	if err := c.Bind(&in); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request data"})
	}

	user, token, err := h.svc.Login(in)
	if err != nil {
		log.Warn("Login failed", zap.String("email", in.Email))
		prometheus.RecordAuthError("login_failure")
		return fail(c, h.env, err)
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return respond(c, http.StatusOK, "Login successful", echo.Map{
		"user":  user,
		"token": token,
	})
}

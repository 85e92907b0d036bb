package middleware

import (
	"net/http"
	"strings"

	"github.com/Arison99/School-Management-System/internal/repository"
	"github.com/Arison99/School-Management-System/pkg/jwtutil"
	"github.com/Arison99/School-Management-System/pkg/logger"
	"github.com/Arison99/School-Management-System/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Auth validates the bearer token and resolves it to a user record.
// Authentication is stateless: the user row is loaded fresh on every
// request, so a token whose subject was deleted is rejected the same
// way as an invalid one.
func Auth(jwt *jwtutil.JWTUtil, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "No token provided, authorization denied",
					"code":    "NO_TOKEN",
				})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid token, authorization denied",
					"code":    "INVALID_TOKEN",
				})
			}

			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid token, authorization denied",
					"code":    "INVALID_TOKEN",
				})
			}

			user, err := users.ByID(claims.UserID)
			if err != nil {
				log.Warn("Token subject no longer exists", zap.Uint("user_id", claims.UserID))
				prometheus.RecordAuthError("user_not_found")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid token, authorization denied",
					"code":    "INVALID_TOKEN",
				})
			}

			c.Set(userKey, user)
			log.Debug("Request authenticated",
				zap.Uint("user_id", user.ID),
				zap.String("email", user.Email))

			return next(c)
		}
	}
}

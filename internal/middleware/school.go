package middleware

import (
	"errors"
	"net/http"

	"github.com/Arison99/School-Management-System/internal/repository"
	"github.com/Arison99/School-Management-System/pkg/logger"
	"github.com/Arison99/School-Management-System/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireSchool resolves the authenticated user to their school. Class
// and student routes run behind it; a valid user without a school
// profile is a distinct condition from an authentication failure. The
// school is cached in the request context only.
func RequireSchool(schools repository.SchoolRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			user := CurrentUser(c)
			if user == nil {
				prometheus.RecordAuthError("missing_user_context")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Invalid token, authorization denied",
					"code":    "INVALID_TOKEN",
				})
			}

			school, err := schools.ByUserID(user.ID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					log.Warn("User has no school profile", zap.Uint("user_id", user.ID))
					prometheus.RecordAuthError("school_required")
					return c.JSON(http.StatusForbidden, echo.Map{
						"success": false,
						"message": "School profile required. Please create your school profile first.",
						"code":    "SCHOOL_REQUIRED",
					})
				}
				log.Error("Failed to resolve school", zap.Uint("user_id", user.ID), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"success": false,
					"message": "Internal server error",
				})
			}

			c.Set(schoolKey, school)
			return next(c)
		}
	}
}

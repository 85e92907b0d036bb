package middleware

import (
	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/labstack/echo/v4"
)

const (
	userKey   = "user"
	schoolKey = "school"
)

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(userKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentSchool returns the resolved school set by RequireSchool, or
// nil.
func CurrentSchool(c echo.Context) *model.School {
	school, ok := c.Get(schoolKey).(*model.School)
	if !ok {
		return nil
	}
	return school
}

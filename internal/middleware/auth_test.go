package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Arison99/School-Management-System/internal/middleware"
	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/internal/repository/memory"
	"github.com/Arison99/School-Management-System/pkg/config"
	"github.com/Arison99/School-Management-System/pkg/jwtutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-secret", ExpirationHours: 1})
}

// whoami echoes the resolved user id so tests can verify the context.
func whoami(c echo.Context) error {
	user := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"userId": user.ID})
}

func doRequest(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMissingToken(t *testing.T) {
	store := memory.NewStore()
	e := echo.New()
	e.GET("/protected", whoami, middleware.Auth(newTestJWT(), store.Users()))

	rec := doRequest(e, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "NO_TOKEN", body["code"])
}

func TestAuthMalformedHeader(t *testing.T) {
	store := memory.NewStore()
	e := echo.New()
	e.GET("/protected", whoami, middleware.Auth(newTestJWT(), store.Users()))

	for _, header := range []string{"sometoken", "Basic abc123", "Bearer a b"} {
		rec := doRequest(e, http.MethodGet, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		body := decodeBody(t, rec)
		assert.Equal(t, "INVALID_TOKEN", body["code"], "header %q", header)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	store := memory.NewStore()
	e := echo.New()
	e.GET("/protected", whoami, middleware.Auth(newTestJWT(), store.Users()))

	rec := doRequest(e, http.MethodGet, "/protected", "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthValidToken(t *testing.T) {
	store := memory.NewStore()
	user := &model.User{Name: "Jane", Email: "jane@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(user))

	token, err := newTestJWT().GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	e := echo.New()
	e.GET("/protected", whoami, middleware.Auth(newTestJWT(), store.Users()))

	rec := doRequest(e, http.MethodGet, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(user.ID), body["userId"])
}

func TestAuthDeletedUser(t *testing.T) {
	store := memory.NewStore()
	user := &model.User{Name: "Jane", Email: "jane@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(user))

	token, err := newTestJWT().GenerateToken(user.ID, user.Email)
	require.NoError(t, err)
	store.DeleteUser(user.ID)

	e := echo.New()
	e.GET("/protected", whoami, middleware.Auth(newTestJWT(), store.Users()))

	// A syntactically valid token whose subject is gone is rejected
	rec := doRequest(e, http.MethodGet, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestRequireSchool(t *testing.T) {
	store := memory.NewStore()
	user := &model.User{Name: "Jane", Email: "jane@example.com", Password: "x"}
	require.NoError(t, store.Users().Create(user))

	token, err := newTestJWT().GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	e := echo.New()
	handler := func(c echo.Context) error {
		school := middleware.CurrentSchool(c)
		return c.JSON(http.StatusOK, echo.Map{"schoolId": school.ID})
	}
	e.GET("/classes", handler,
		middleware.Auth(newTestJWT(), store.Users()),
		middleware.RequireSchool(store.Schools()))

	// No school yet
	rec := doRequest(e, http.MethodGet, "/classes", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "SCHOOL_REQUIRED", body["code"])

	// With a school the request passes and the school is in context
	school := &model.School{UserID: user.ID, Name: "Test Academy", RegistrationNumber: "REG-1", LicenseNumber: "LIC-1", TIN: "TIN-1"}
	require.NoError(t, store.Schools().Create(school))

	rec = doRequest(e, http.MethodGet, "/classes", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, float64(school.ID), body["schoolId"])
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/Arison99/School-Management-System/internal/middleware"
	"github.com/Arison99/School-Management-System/internal/service"
	"github.com/Arison99/School-Management-System/pkg/logger"
	"github.com/Arison99/School-Management-System/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SchoolHandler serves the caller's school profile.
type SchoolHandler struct {
	svc *service.SchoolService
	env string
}

// NewSchoolHandler creates a SchoolHandler.
func NewSchoolHandler(svc *service.SchoolService, env string) *SchoolHandler {
	return &SchoolHandler{svc: svc, env: env}
}

// Create registers a school for the authenticated user.
func (h *SchoolHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordSchoolOperation("create")

	var in service.SchoolInput
	if err := c.Bind(&in); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request data"})
	}

	user := middleware.CurrentUser(c)
	school, err := h.svc.Create(user.ID, in)
	if err != nil {
		return fail(c, h.env, err)
	}

	log.Info("School created",
		zap.Uint("school_id", school.ID),
		zap.Uint("user_id", user.ID),
		zap.String("name", school.Name))
	return respond(c, http.StatusCreated, "School created successfully", school)
}

// MySchool returns the caller's school.
func (h *SchoolHandler) MySchool(c echo.Context) error {
	prometheus.RecordSchoolOperation("get")

	user := middleware.CurrentUser(c)
	school, err := h.svc.MySchool(user.ID)
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", school)
}

// Stats returns the stored aggregate counters of the caller's school.
func (h *SchoolHandler) Stats(c echo.Context) error {
	prometheus.RecordSchoolOperation("stats")

	user := middleware.CurrentUser(c)
	stats, err := h.svc.Stats(user.ID)
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", stats)
}

// ByID returns a school by id.
func (h *SchoolHandler) ByID(c echo.Context) error {
	prometheus.RecordSchoolOperation("get")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid school ID"})
	}

	school, err := h.svc.ByID(uint(id))
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", school)
}

// List returns all schools, paginated.
func (h *SchoolHandler) List(c echo.Context) error {
	prometheus.RecordSchoolOperation("list")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	schools, err := h.svc.List(limit, offset)
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", schools)
}

// Update applies a partial update to the caller's school.
func (h *SchoolHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordSchoolOperation("update")

	var in service.SchoolUpdateInput
	if err := c.Bind(&in); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request data"})
	}

	user := middleware.CurrentUser(c)
	school, err := h.svc.Update(user.ID, in)
	if err != nil {
		return fail(c, h.env, err)
	}

	log.Info("School updated", zap.Uint("school_id", school.ID), zap.Uint("user_id", user.ID))
	return respond(c, http.StatusOK, "School updated successfully", school)
}

// Delete removes the caller's school.
func (h *SchoolHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordSchoolOperation("delete")

	user := middleware.CurrentUser(c)
	if err := h.svc.Delete(user.ID); err != nil {
		return fail(c, h.env, err)
	}

	log.Info("School deleted", zap.Uint("user_id", user.ID))
	return respond(c, http.StatusOK, "School deleted successfully", nil)
}

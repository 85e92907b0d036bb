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

// ClassHandler serves classes scoped to the caller's school. The
// school is resolved by the RequireSchool middleware.
type ClassHandler struct {
	svc *service.ClassService
	env string
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(svc *service.ClassService, env string) *ClassHandler {
	return &ClassHandler{svc: svc, env: env}
}

// Create adds a class to the caller's school.
func (h *ClassHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordClassOperation("create")

	var in service.ClassInput
	if err := c.Bind(&in); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request data"})
	}

	school := middleware.CurrentSchool(c)
	class, err := h.svc.Create(school.ID, in)
	if err != nil {
		return fail(c, h.env, err)
	}

	log.Info("Class created",
		zap.Uint("class_id", class.ID),
		zap.Uint("school_id", school.ID),
		zap.String("class_name", class.ClassName),
		zap.String("year", class.Year))
	return respond(c, http.StatusCreated, "Class created successfully", class)
}

// List returns the caller's classes with student counts.
func (h *ClassHandler) List(c echo.Context) error {
	prometheus.RecordClassOperation("list")

	school := middleware.CurrentSchool(c)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	classes, err := h.svc.List(school.ID, c.QueryParam("status"), limit, offset)
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", classes)
}

// Get returns one class with its students.
func (h *ClassHandler) Get(c echo.Context) error {
	prometheus.RecordClassOperation("get")

	classID, err := classParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid class ID"})
	}

	school := middleware.CurrentSchool(c)
	class, err := h.svc.Get(classID, school.ID)
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", class)
}

// Update applies a partial update to an owned class.
func (h *ClassHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordClassOperation("update")

	classID, err := classParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid class ID"})
	}

	var in service.ClassUpdateInput
	if err := c.Bind(&in); err != nil {
		log.Error("Invalid request data", zap.Uint("class_id", classID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request data"})
	}

	school := middleware.CurrentSchool(c)
	class, err := h.svc.Update(classID, school.ID, in)
	if err != nil {
		return fail(c, h.env, err)
	}

	log.Info("Class updated", zap.Uint("class_id", class.ID), zap.Uint("school_id", school.ID))
	return respond(c, http.StatusOK, "Class updated successfully", class)
}

// Delete removes an owned class if it has no students.
func (h *ClassHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordClassOperation("delete")

	classID, err := classParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid class ID"})
	}

	school := middleware.CurrentSchool(c)
	if err := h.svc.Delete(classID, school.ID); err != nil {
		return fail(c, h.env, err)
	}

	log.Info("Class deleted", zap.Uint("class_id", classID), zap.Uint("school_id", school.ID))
	return respond(c, http.StatusOK, "Class deleted successfully", nil)
}

// Stats returns class aggregates for the caller's school.
func (h *ClassHandler) Stats(c echo.Context) error {
	prometheus.RecordClassOperation("stats")

	school := middleware.CurrentSchool(c)
	stats, err := h.svc.Stats(school.ID)
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", stats)
}

func classParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("classId"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

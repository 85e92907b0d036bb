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

// StudentHandler serves students nested under classes, plus the
// school-wide listing and search.
type StudentHandler struct {
	svc *service.StudentService
	env string
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(svc *service.StudentService, env string) *StudentHandler {
	return &StudentHandler{svc: svc, env: env}
}

// Add creates a student in the route's class.
func (h *StudentHandler) Add(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordStudentOperation("create")

	classID, err := classParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid class ID"})
	}

	var in service.StudentInput
	if err := c.Bind(&in); err != nil {
		log.Error("Invalid request data", zap.Uint("class_id", classID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request data"})
	}

	school := middleware.CurrentSchool(c)
	student, err := h.svc.Add(classID, school.ID, in)
	if err != nil {
		return fail(c, h.env, err)
	}

	log.Info("Student added",
		zap.Uint("student_id", student.ID),
		zap.Uint("class_id", classID),
		zap.String("student_number", student.StudentNumber))
	return respond(c, http.StatusCreated, "Student added successfully", student)
}

// Update applies a partial update to a student in the route's class.
func (h *StudentHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordStudentOperation("update")

	classID, studentID, err := studentParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid student ID"})
	}

	var in service.StudentUpdateInput
	if err := c.Bind(&in); err != nil {
		log.Error("Invalid request data", zap.Uint("student_id", studentID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid request data"})
	}

	school := middleware.CurrentSchool(c)
	student, err := h.svc.Update(studentID, classID, school.ID, in)
	if err != nil {
		return fail(c, h.env, err)
	}

	log.Info("Student updated", zap.Uint("student_id", student.ID), zap.Uint("class_id", classID))
	return respond(c, http.StatusOK, "Student updated successfully", student)
}

// Delete removes a student from the route's class.
func (h *StudentHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordStudentOperation("delete")

	classID, studentID, err := studentParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, envelope{Success: false, Message: "Invalid student ID"})
	}

	school := middleware.CurrentSchool(c)
	if err := h.svc.Delete(studentID, classID, school.ID); err != nil {
		return fail(c, h.env, err)
	}

	log.Info("Student deleted", zap.Uint("student_id", studentID), zap.Uint("class_id", classID))
	return respond(c, http.StatusOK, "Student deleted successfully", nil)
}

// All lists every student in the caller's school.
func (h *StudentHandler) All(c echo.Context) error {
	prometheus.RecordStudentOperation("list")

	school := middleware.CurrentSchool(c)
	students, err := h.svc.All(school.ID)
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", students)
}

// Search finds the caller's students matching the q parameter.
func (h *StudentHandler) Search(c echo.Context) error {
	prometheus.RecordStudentOperation("search")

	school := middleware.CurrentSchool(c)
	students, err := h.svc.Search(school.ID, c.QueryParam("q"))
	if err != nil {
		return fail(c, h.env, err)
	}
	return respond(c, http.StatusOK, "", students)
}

func studentParams(c echo.Context) (classID, studentID uint, err error) {
	classID, err = classParam(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		return 0, 0, err
	}
	return classID, uint(id), nil
}

// Package apperr defines the error taxonomy shared by the service and
// handler layers. Every business rule violation is an *Error carrying
// the HTTP status and a machine-readable code the boundary serializes
// into the response envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error condition to API clients.
type Code string

const (
	CodeNoToken             Code = "NO_TOKEN"
	CodeInvalidToken        Code = "INVALID_TOKEN"
	CodeInvalidCredentials  Code = "INVALID_CREDENTIALS"
	CodeUserExists          Code = "USER_EXISTS"
	CodeSchoolRequired      Code = "SCHOOL_REQUIRED"
	CodeSchoolExists        Code = "SCHOOL_EXISTS"
	CodeSchoolNotFound      Code = "SCHOOL_NOT_FOUND"
	CodeDuplicateRegNumber  Code = "DUPLICATE_REG_NUMBER"
	CodeDuplicateLicense    Code = "DUPLICATE_LICENSE"
	CodeDuplicateTIN        Code = "DUPLICATE_TIN"
	CodeClassExists         Code = "CLASS_EXISTS"
	CodeClassNotFound       Code = "CLASS_NOT_FOUND"
	CodeClassHasStudents    Code = "CLASS_HAS_STUDENTS"
	CodeAccessDenied        Code = "ACCESS_DENIED"
	CodeStudentNotFound     Code = "STUDENT_NOT_FOUND"
	CodeStudentNumberExists Code = "STUDENT_NUMBER_EXISTS"
	CodeInvalidClass        Code = "INVALID_CLASS"
	CodeInvalidQuery        Code = "INVALID_QUERY"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// Error is a structured application error.
type Error struct {
	Status  int
	Code    Code
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the given status, code and message.
func New(status int, code Code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// From converts any error into an *Error. Unknown errors map to an
// opaque internal error so no detail leaks to clients.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal()
}

// Validation reports field-level input rejection.
func Validation(fields map[string]string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func NoToken() *Error {
	return New(http.StatusUnauthorized, CodeNoToken, "No token provided, authorization denied")
}

func InvalidToken() *Error {
	return New(http.StatusUnauthorized, CodeInvalidToken, "Invalid token, authorization denied")
}

func InvalidCredentials() *Error {
	return New(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid email or password")
}

func UserExists() *Error {
	return New(http.StatusConflict, CodeUserExists, "Email already in use")
}

func SchoolRequired() *Error {
	return New(http.StatusForbidden, CodeSchoolRequired, "School profile required. Please create your school profile first.")
}

func SchoolExists() *Error {
	return New(http.StatusConflict, CodeSchoolExists, "User already has a registered school")
}

func SchoolNotFound() *Error {
	return New(http.StatusNotFound, CodeSchoolNotFound, "School not found")
}

func DuplicateRegNumber() *Error {
	return New(http.StatusConflict, CodeDuplicateRegNumber, "Registration number already exists")
}

func DuplicateLicense() *Error {
	return New(http.StatusConflict, CodeDuplicateLicense, "License number already exists")
}

func DuplicateTIN() *Error {
	return New(http.StatusConflict, CodeDuplicateTIN, "TIN already exists")
}

func ClassExists() *Error {
	return New(http.StatusConflict, CodeClassExists, "Class already exists for this year")
}

func ClassNotFound() *Error {
	return New(http.StatusNotFound, CodeClassNotFound, "Class not found")
}

// ClassHasStudents refuses deletion of a non-empty class. The student
// count is part of the user-visible message.
func ClassHasStudents(count int64) *Error {
	return New(http.StatusBadRequest, CodeClassHasStudents, fmt.Sprintf("Cannot delete class with %d students", count))
}

func AccessDenied() *Error {
	return New(http.StatusForbidden, CodeAccessDenied, "Access denied")
}

func StudentNotFound() *Error {
	return New(http.StatusNotFound, CodeStudentNotFound, "Student not found")
}

func StudentNumberExists() *Error {
	return New(http.StatusConflict, CodeStudentNumberExists, "Student number already exists")
}

func InvalidClass() *Error {
	return New(http.StatusForbidden, CodeInvalidClass, "Student does not belong to this class")
}

func InvalidQuery() *Error {
	return New(http.StatusBadRequest, CodeInvalidQuery, "Search query must be at least 2 characters")
}

func Internal() *Error {
	return New(http.StatusInternalServerError, CodeInternal, "Internal server error")
}

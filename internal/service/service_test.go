package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/internal/repository/memory"
	"github.com/Arison99/School-Management-System/pkg/config"
	"github.com/Arison99/School-Management-System/pkg/jwtutil"
	"github.com/stretchr/testify/require"
)

var testJWTConfig = &config.JWTConfig{
	SigningKey:      "test-signing-key",
	ExpirationHours: 1,
}

// assertCode fails unless err is an application error with the code.
func assertCode(t *testing.T, err error, code apperr.Code) *apperr.Error {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %v", err)
	require.Equal(t, code, ae.Code)
	return ae
}

// seedSchool creates a user and a school owned by it.
func seedSchool(t *testing.T, store *memory.Store, email string) *model.School {
	t.Helper()
	user := &model.User{Name: "Owner", Email: email, Password: "x"}
	require.NoError(t, store.Users().Create(user))
	school := &model.School{
		UserID:             user.ID,
		Name:               "Test Academy " + email,
		Type:               "Secondary School",
		RegistrationNumber: "REG-" + email,
		LicenseNumber:      "LIC-" + email,
		TIN:                "TIN-" + email,
		Location:           "Kampala",
	}
	require.NoError(t, store.Schools().Create(school))
	return school
}

// seedClass creates a class in the school.
func seedClass(t *testing.T, store *memory.Store, schoolID uint, name, year string) *model.Class {
	t.Helper()
	class := &model.Class{SchoolID: schoolID, ClassName: name, Year: year}
	require.NoError(t, store.Classes().Create(class))
	return class
}

// seedStudent creates a student in the class.
func seedStudent(t *testing.T, store *memory.Store, classID uint, number, name string) *model.Student {
	t.Helper()
	student := &model.Student{
		ClassID:       classID,
		StudentNumber: number,
		StudentName:   name,
		DOB:           "2012-03-10",
		Age:           12,
		FatherName:    "Father " + name,
		MotherName:    "Mother " + name,
	}
	require.NoError(t, store.Students().Create(student))
	return student
}

// fixedNow pins a service clock for age derivation.
func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func newTestJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(testJWTConfig)
}

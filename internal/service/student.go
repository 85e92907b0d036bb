package service

import (
	"errors"
	"strings"
	"time"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/internal/repository"
	"github.com/go-playground/validator/v10"
)

// StudentService manages students inside classes. Mutations walk the
// full ownership chain (student -> class -> school) and additionally
// verify the student belongs to the class named in the route, so a
// valid student id cannot be replayed under a different class.
type StudentService struct {
	students repository.StudentRepository
	classes  repository.ClassRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewStudentService creates a StudentService.
func NewStudentService(students repository.StudentRepository, classes repository.ClassRepository) *StudentService {
	return &StudentService{
		students: students,
		classes:  classes,
		validate: newValidator(),
		now:      time.Now,
	}
}

// StudentInput is the student creation payload.
type StudentInput struct {
	StudentNumber string `json:"studentNumber" validate:"required"`
	StudentName   string `json:"studentName" validate:"required,min=2"`
	DOB           string `json:"dob" validate:"required,datetime=2006-01-02"`
	Age           int    `json:"age" validate:"omitempty,min=1,max=100"`
	FatherName    string `json:"fatherName" validate:"required,min=2"`
	MotherName    string `json:"motherName" validate:"required,min=2"`
	Photo         string `json:"photo"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email" validate:"omitempty,email"`
	Status        string `json:"status" validate:"omitempty,oneof=active inactive graduated transferred"`
}

// StudentUpdateInput carries partial updates; classId and
// studentNumber are never updatable.
type StudentUpdateInput struct {
	StudentName *string `json:"studentName" validate:"omitempty,min=2"`
	DOB         *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Age         *int    `json:"age" validate:"omitempty,min=1,max=100"`
	FatherName  *string `json:"fatherName" validate:"omitempty,min=2"`
	MotherName  *string `json:"motherName" validate:"omitempty,min=2"`
	Photo       *string `json:"photo"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive graduated transferred"`
}

// Add creates a student in a class after verifying the class belongs
// to the caller's school. Student numbers are unique across all
// schools. Age is derived from dob when not supplied.
func (s *StudentService) Add(classID, schoolID uint, in StudentInput) (*model.Student, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}

	if _, err := s.ownedClass(classID, schoolID); err != nil {
		return nil, err
	}

	exists, err := s.students.NumberExists(in.StudentNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.StudentNumberExists()
	}

	age := in.Age
	if age == 0 {
		age, err = calculateAge(in.DOB, s.now())
		if err != nil {
			return nil, apperr.Validation(map[string]string{"dob": "Please enter a valid date (YYYY-MM-DD)"})
		}
	}

	student := &model.Student{
		ClassID:       classID,
		StudentNumber: in.StudentNumber,
		StudentName:   in.StudentName,
		DOB:           in.DOB,
		Age:           age,
		FatherName:    in.FatherName,
		MotherName:    in.MotherName,
		Photo:         in.Photo,
		Address:       in.Address,
		PhoneNumber:   in.PhoneNumber,
		Email:         in.Email,
		Status:        in.Status,
	}
	if student.Status == "" {
		student.Status = model.StudentStatusActive
	}
	if err := s.students.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

// Update applies a partial update after walking the ownership chain.
// A dob change recomputes age; a client-supplied age is ignored when
// dob is also supplied.
func (s *StudentService) Update(studentID, classID, schoolID uint, in StudentUpdateInput) (*model.Student, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}

	student, err := s.ownedStudent(studentID, classID, schoolID)
	if err != nil {
		return nil, err
	}

	if in.StudentName != nil {
		student.StudentName = *in.StudentName
	}
	if in.FatherName != nil {
		student.FatherName = *in.FatherName
	}
	if in.MotherName != nil {
		student.MotherName = *in.MotherName
	}
	if in.Photo != nil {
		student.Photo = *in.Photo
	}
	if in.Address != nil {
		student.Address = *in.Address
	}
	if in.PhoneNumber != nil {
		student.PhoneNumber = *in.PhoneNumber
	}
	if in.Email != nil {
		student.Email = *in.Email
	}
	if in.Status != nil {
		student.Status = *in.Status
	}

	if in.DOB != nil {
		student.DOB = *in.DOB
		age, err := calculateAge(student.DOB, s.now())
		if err != nil {
			return nil, apperr.Validation(map[string]string{"dob": "Please enter a valid date (YYYY-MM-DD)"})
		}
		student.Age = age
	} else if in.Age != nil {
		student.Age = *in.Age
	}

	if err := s.students.Save(student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student after walking the ownership chain.
func (s *StudentService) Delete(studentID, classID, schoolID uint) error {
	student, err := s.ownedStudent(studentID, classID, schoolID)
	if err != nil {
		return err
	}
	return s.students.Delete(student.ID)
}

// All returns every student in the caller's school.
func (s *StudentService) All(schoolID uint) ([]model.Student, error) {
	return s.students.ListBySchool(schoolID)
}

// Search finds the school's students whose number or names contain the
// query, case-insensitively.
func (s *StudentService) Search(schoolID uint, query string) ([]model.Student, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, apperr.InvalidQuery()
	}
	return s.students.Search(schoolID, query)
}

// ownedStudent loads a student and verifies both links of the chain:
// the student must belong to the route's class (INVALID_CLASS guards
// cross-class reference confusion) and the class must belong to the
// caller's school (ACCESS_DENIED guards cross-tenant access).
func (s *StudentService) ownedStudent(studentID, classID, schoolID uint) (*model.Student, error) {
	student, err := s.students.ByID(studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.StudentNotFound()
		}
		return nil, err
	}

	if student.ClassID != classID {
		return nil, apperr.InvalidClass()
	}

	if _, err := s.ownedClass(classID, schoolID); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) ownedClass(classID, schoolID uint) (*model.Class, error) {
	class, err := s.classes.ByID(classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ClassNotFound()
		}
		return nil, err
	}
	if class.SchoolID != schoolID {
		return nil, apperr.AccessDenied()
	}
	return class, nil
}

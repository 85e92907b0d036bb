package service

import (
	"errors"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/internal/repository"
	"github.com/go-playground/validator/v10"
)

// ClassService manages classes inside the caller's school. Every read
// and mutation checks the ownership chain: a class reachable by id but
// belonging to another school yields ACCESS_DENIED, which is kept
// distinct from CLASS_NOT_FOUND.
type ClassService struct {
	classes  repository.ClassRepository
	students repository.StudentRepository
	validate *validator.Validate
}

// NewClassService creates a ClassService.
func NewClassService(classes repository.ClassRepository, students repository.StudentRepository) *ClassService {
	return &ClassService{
		classes:  classes,
		students: students,
		validate: newValidator(),
	}
}

// ClassInput is the class creation payload.
type ClassInput struct {
	ClassName   string `json:"className" validate:"required,min=2"`
	Year        string `json:"year" validate:"required,len=4,numeric"`
	Photo       string `json:"photo"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// ClassUpdateInput carries partial updates; schoolId is never
// updatable.
type ClassUpdateInput struct {
	ClassName   *string `json:"className" validate:"omitempty,min=2"`
	Year        *string `json:"year" validate:"omitempty,len=4,numeric"`
	Photo       *string `json:"photo"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive archived"`
}

// ClassSummary is a class with its live student count.
type ClassSummary struct {
	model.Class
	StudentCount int64 `json:"studentCount"`
}

// ClassDetail is a class with its students embedded.
type ClassDetail struct {
	model.Class
	Students     []model.Student `json:"students"`
	StudentCount int             `json:"studentCount"`
}

// ClassYearCount is one studentsPerClass entry of ClassStats.
type ClassYearCount struct {
	ClassName string `json:"className"`
	Year      string `json:"year"`
	Count     int64  `json:"count"`
}

// ClassStats aggregates the school's classes from live rows.
type ClassStats struct {
	TotalClasses     int              `json:"totalClasses"`
	TotalStudents    int64            `json:"totalStudents"`
	ClassesByYear    map[string]int   `json:"classesByYear"`
	StudentsPerClass []ClassYearCount `json:"studentsPerClass"`
}

// Create adds a class to the school. (schoolId, className, year) must
// be unique.
func (s *ClassService) Create(schoolID uint, in ClassInput) (*model.Class, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}

	exists, err := s.classes.Exists(schoolID, in.ClassName, in.Year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.ClassExists()
	}

	class := &model.Class{
		SchoolID:    schoolID,
		ClassName:   in.ClassName,
		Year:        in.Year,
		Photo:       in.Photo,
		Description: in.Description,
		Capacity:    in.Capacity,
		Status:      in.Status,
	}
	if class.Capacity == 0 {
		class.Capacity = 30
	}
	if class.Status == "" {
		class.Status = model.ClassStatusActive
	}
	if err := s.classes.Create(class); err != nil {
		return nil, err
	}
	return class, nil
}

// List returns the school's classes with student counts.
func (s *ClassService) List(schoolID uint, status string, limit, offset int) ([]ClassSummary, error) {
	classes, err := s.classes.ListBySchool(schoolID, status, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(classes))
	for i, class := range classes {
		ids[i] = class.ID
	}
	counts, err := s.students.CountByClassIDs(ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]ClassSummary, len(classes))
	for i, class := range classes {
		summaries[i] = ClassSummary{Class: class, StudentCount: counts[class.ID]}
	}
	return summaries, nil
}

// Get returns a class with its students after verifying ownership.
func (s *ClassService) Get(classID, schoolID uint) (*ClassDetail, error) {
	class, err := s.ownedClass(classID, schoolID)
	if err != nil {
		return nil, err
	}

	students, err := s.students.ListByClass(class.ID)
	if err != nil {
		return nil, err
	}
	return &ClassDetail{
		Class:        *class,
		Students:     students,
		StudentCount: len(students),
	}, nil
}

// Update applies a partial update after verifying ownership.
func (s *ClassService) Update(classID, schoolID uint, in ClassUpdateInput) (*model.Class, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}

	class, err := s.ownedClass(classID, schoolID)
	if err != nil {
		return nil, err
	}

	if in.ClassName != nil {
		class.ClassName = *in.ClassName
	}
	if in.Year != nil {
		class.Year = *in.Year
	}
	if in.Photo != nil {
		class.Photo = *in.Photo
	}
	if in.Description != nil {
		class.Description = *in.Description
	}
	if in.Capacity != nil {
		class.Capacity = *in.Capacity
	}
	if in.Status != nil {
		class.Status = *in.Status
	}

	if err := s.classes.Save(class); err != nil {
		return nil, err
	}
	return class, nil
}

// Delete removes an owned class, refusing while it still has students.
func (s *ClassService) Delete(classID, schoolID uint) error {
	class, err := s.ownedClass(classID, schoolID)
	if err != nil {
		return err
	}

	count, err := s.students.CountByClass(class.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.ClassHasStudents(count)
	}

	return s.classes.Delete(class.ID)
}

// Stats computes class aggregates for the school from live rows.
func (s *ClassService) Stats(schoolID uint) (*ClassStats, error) {
	classes, err := s.classes.ListBySchool(schoolID, "", 0, 0)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(classes))
	for i, class := range classes {
		ids[i] = class.ID
	}
	counts, err := s.students.CountByClassIDs(ids)
	if err != nil {
		return nil, err
	}

	stats := &ClassStats{
		TotalClasses:     len(classes),
		ClassesByYear:    make(map[string]int),
		StudentsPerClass: make([]ClassYearCount, 0, len(classes)),
	}
	for _, class := range classes {
		count := counts[class.ID]
		stats.TotalStudents += count
		stats.ClassesByYear[class.Year]++
		stats.StudentsPerClass = append(stats.StudentsPerClass, ClassYearCount{
			ClassName: class.ClassName,
			Year:      class.Year,
			Count:     count,
		})
	}
	return stats, nil
}

// ownedClass loads a class and verifies it belongs to the school.
// "Not found" and "not yours" remain distinct conditions.
func (s *ClassService) ownedClass(classID, schoolID uint) (*model.Class, error) {
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

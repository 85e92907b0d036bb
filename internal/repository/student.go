package repository

import (
	"errors"
	"time"

	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/prometheus"
	"gorm.io/gorm"
)

// StudentRepository stores students. School-wide reads go through the
// class join so results never cross tenant boundaries.
type StudentRepository interface {
	Create(student *model.Student) error
	ByID(id uint) (*model.Student, error)
	ListByClass(classID uint) ([]model.Student, error)
	ListBySchool(schoolID uint) ([]model.Student, error)
	Search(schoolID uint, query string) ([]model.Student, error)
	CountByClass(classID uint) (int64, error)
	CountByClassIDs(classIDs []uint) (map[uint]int64, error)
	NumberExists(studentNumber string) (bool, error)
	Save(student *model.Student) error
	Delete(id uint) error
}

type gormStudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository returns a GORM-backed StudentRepository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &gormStudentRepository{db: db}
}

func (r *gormStudentRepository) Create(student *model.Student) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.Create(student).Error
}

func (r *gormStudentRepository) ByID(id uint) (*model.Student, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var student model.Student
	if err := r.db.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *gormStudentRepository) ListByClass(classID uint) ([]model.Student, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var students []model.Student
	err := r.db.Where("class_id = ?", classID).
		Order("student_number asc").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *gormStudentRepository) ListBySchool(schoolID uint) ([]model.Student, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var students []model.Student
	err := r.db.Joins("JOIN classes ON classes.id = students.class_id").
		Where("classes.school_id = ?", schoolID).
		Order("students.student_number asc").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *gormStudentRepository) Search(schoolID uint, query string) ([]model.Student, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	like := "%" + query + "%"
	var students []model.Student
	err := r.db.Joins("JOIN classes ON classes.id = students.class_id").
		Where("classes.school_id = ?", schoolID).
		Where("students.student_number ILIKE ? OR students.student_name ILIKE ? OR students.father_name ILIKE ? OR students.mother_name ILIKE ?",
			like, like, like, like).
		Order("students.student_name asc").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *gormStudentRepository) CountByClass(classID uint) (int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	if err := r.db.Model(&model.Student{}).Where("class_id = ?", classID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gormStudentRepository) CountByClassIDs(classIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(classIDs))
	if len(classIDs) == 0 {
		return counts, nil
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var rows []struct {
		ClassID uint
		Count   int64
	}
	err := r.db.Model(&model.Student{}).
		Select("class_id, count(*) as count").
		Where("class_id IN ?", classIDs).
		Group("class_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ClassID] = row.Count
	}
	return counts, nil
}

func (r *gormStudentRepository) NumberExists(studentNumber string) (bool, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	if err := r.db.Model(&model.Student{}).Where("student_number = ?", studentNumber).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormStudentRepository) Save(student *model.Student) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return r.db.Save(student).Error
}

func (r *gormStudentRepository) Delete(id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return r.db.Delete(&model.Student{}, id).Error
}

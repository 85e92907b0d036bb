package repository

import (
	"errors"
	"time"

	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/prometheus"
	"gorm.io/gorm"
)

// ClassRepository stores classes.
type ClassRepository interface {
	Create(class *model.Class) error
	ByID(id uint) (*model.Class, error)
	Exists(schoolID uint, className, year string) (bool, error)
	ListBySchool(schoolID uint, status string, limit, offset int) ([]model.Class, error)
	Save(class *model.Class) error
	Delete(id uint) error
}

type gormClassRepository struct {
	db *gorm.DB
}

// NewClassRepository returns a GORM-backed ClassRepository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &gormClassRepository{db: db}
}

func (r *gormClassRepository) Create(class *model.Class) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.Create(class).Error
}

func (r *gormClassRepository) ByID(id uint) (*model.Class, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var class model.Class
	if err := r.db.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *gormClassRepository) Exists(schoolID uint, className, year string) (bool, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	err := r.db.Model(&model.Class{}).
		Where("school_id = ? AND class_name = ? AND year = ?", schoolID, className, year).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormClassRepository) ListBySchool(schoolID uint, status string, limit, offset int) ([]model.Class, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	q := r.db.Where("school_id = ?", schoolID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var classes []model.Class
	if err := q.Order("year desc, class_name asc").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *gormClassRepository) Save(class *model.Class) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return r.db.Save(class).Error
}

func (r *gormClassRepository) Delete(id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return r.db.Delete(&model.Class{}, id).Error
}

package repository

import (
	"errors"
	"time"

	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/prometheus"
	"gorm.io/gorm"
)

// SchoolRepository stores school profiles. The Exists* checks back the
// pre-insert uniqueness queries on the three business identifiers.
type SchoolRepository interface {
	Create(school *model.School) error
	ByID(id uint) (*model.School, error)
	ByUserID(userID uint) (*model.School, error)
	ExistsByRegistrationNumber(number string) (bool, error)
	ExistsByLicenseNumber(number string) (bool, error)
	ExistsByTIN(tin string) (bool, error)
	List(limit, offset int) ([]model.School, error)
	Save(school *model.School) error
	Delete(id uint) error
}

type gormSchoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository returns a GORM-backed SchoolRepository.
func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &gormSchoolRepository{db: db}
}

func (r *gormSchoolRepository) Create(school *model.School) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.Create(school).Error
}

func (r *gormSchoolRepository) ByID(id uint) (*model.School, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var school model.School
	if err := r.db.First(&school, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

func (r *gormSchoolRepository) ByUserID(userID uint) (*model.School, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var school model.School
	if err := r.db.Where("user_id = ?", userID).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

func (r *gormSchoolRepository) ExistsByRegistrationNumber(number string) (bool, error) {
	return r.exists("registration_number = ?", number)
}

func (r *gormSchoolRepository) ExistsByLicenseNumber(number string) (bool, error) {
	return r.exists("license_number = ?", number)
}

func (r *gormSchoolRepository) ExistsByTIN(tin string) (bool, error) {
	return r.exists("tin = ?", tin)
}

func (r *gormSchoolRepository) exists(query string, arg string) (bool, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var count int64
	if err := r.db.Model(&model.School{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormSchoolRepository) List(limit, offset int) ([]model.School, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var schools []model.School
	q := r.db.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *gormSchoolRepository) Save(school *model.School) error {
	defer prometheus.TrackDBOperation("update")(time.Now())
	return r.db.Save(school).Error
}

func (r *gormSchoolRepository) Delete(id uint) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())
	return r.db.Delete(&model.School{}, id).Error
}

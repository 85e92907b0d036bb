package repository

import (
	"errors"
	"time"

	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/prometheus"
	"gorm.io/gorm"
)

// UserRepository stores user accounts.
type UserRepository interface {
	Create(user *model.User) error
	ByID(id uint) (*model.User, error)
	ByEmail(email string) (*model.User, error)
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(user *model.User) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	return r.db.Create(user).Error
}

func (r *gormUserRepository) ByID(id uint) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) ByEmail(email string) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

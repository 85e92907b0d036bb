package model

import (
	"time"

	"gorm.io/datatypes"
)

// School statuses.
const (
	SchoolStatusActive    = "active"
	SchoolStatusInactive  = "inactive"
	SchoolStatusSuspended = "suspended"
)

// School is the tenant root. The unique index on UserID enforces
// "one school per user" at the storage level; the three business
// identifiers are globally unique across all schools. The total*
// counters are stored fields, not derived values.
type School struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	UserID             uint           `json:"userId" gorm:"uniqueIndex;not null"`
	Name               string         `json:"name" gorm:"type:varchar(255);not null"`
	Type               string         `json:"type" gorm:"type:varchar(100);not null"`
	RegistrationNumber string         `json:"registrationNumber" gorm:"type:varchar(100);uniqueIndex;not null"`
	LicenseNumber      string         `json:"licenseNumber" gorm:"type:varchar(100);uniqueIndex;not null"`
	TIN                string         `json:"tin" gorm:"column:tin;type:varchar(100);uniqueIndex;not null"`
	Location           string         `json:"location" gorm:"type:varchar(500);not null"`
	Address            string         `json:"address" gorm:"type:varchar(500)"`
	Phone              string         `json:"phone" gorm:"type:varchar(20)"`
	Email              string         `json:"email" gorm:"type:varchar(255)"`
	Website            string         `json:"website" gorm:"type:varchar(255)"`
	Photo              string         `json:"photo" gorm:"type:varchar(500)"`
	TotalStaff         int            `json:"totalStaff" gorm:"default:0"`
	TotalStudents      int            `json:"totalStudents" gorm:"default:0"`
	TotalTeachers      int            `json:"totalTeachers" gorm:"default:0"`
	TotalCourses       int            `json:"totalCourses" gorm:"default:0"`
	EstablishedYear    int            `json:"establishedYear"`
	HeadMaster         datatypes.JSON `json:"headMaster" gorm:"type:jsonb"`
	StudentsPerClass   datatypes.JSON `json:"studentsPerClass" gorm:"type:jsonb"`
	Status             string         `json:"status" gorm:"type:varchar(20);default:'active'"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

package model

import "time"

// Class statuses.
const (
	ClassStatusActive   = "active"
	ClassStatusInactive = "inactive"
	ClassStatusArchived = "archived"
)

// Class belongs to exactly one school. (SchoolID, ClassName, Year) is
// unique: a school cannot run two classes with the same name in the
// same year.
type Class struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SchoolID    uint      `json:"schoolId" gorm:"not null;uniqueIndex:idx_classes_school_name_year"`
	ClassName   string    `json:"className" gorm:"type:varchar(255);not null;uniqueIndex:idx_classes_school_name_year"`
	Year        string    `json:"year" gorm:"type:varchar(4);not null;uniqueIndex:idx_classes_school_name_year"`
	Photo       string    `json:"photo" gorm:"type:varchar(500)"`
	Description string    `json:"description" gorm:"type:text"`
	Capacity    int       `json:"capacity" gorm:"default:30"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'active'"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

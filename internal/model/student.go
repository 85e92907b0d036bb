package model

import "time"

// Student statuses.
const (
	StudentStatusActive      = "active"
	StudentStatusInactive    = "inactive"
	StudentStatusGraduated   = "graduated"
	StudentStatusTransferred = "transferred"
)

// Student belongs to exactly one class. StudentNumber is unique across
// all schools, not just within one.
type Student struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ClassID       uint      `json:"classId" gorm:"index;not null"`
	StudentNumber string    `json:"studentNumber" gorm:"type:varchar(50);uniqueIndex;not null"`
	StudentName   string    `json:"studentName" gorm:"type:varchar(255);not null"`
	DOB           string    `json:"dob" gorm:"column:dob;type:varchar(10);not null"`
	Age           int       `json:"age" gorm:"not null"`
	FatherName    string    `json:"fatherName" gorm:"type:varchar(255);not null"`
	MotherName    string    `json:"motherName" gorm:"type:varchar(255);not null"`
	Photo         string    `json:"photo" gorm:"type:varchar(500)"`
	Address       string    `json:"address" gorm:"type:text"`
	PhoneNumber   string    `json:"phoneNumber" gorm:"type:varchar(20)"`
	Email         string    `json:"email" gorm:"type:varchar(255)"`
	Status        string    `json:"status" gorm:"type:varchar(20);default:'active'"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

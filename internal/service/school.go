package service

import (
	"encoding/json"
	"errors"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/internal/repository"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// SchoolService manages the caller's school profile. A user owns at
// most one school, and the three business identifiers are checked for
// uniqueness before insert; the storage-level unique indexes are the
// second line of defense under concurrent creates.
type SchoolService struct {
	schools  repository.SchoolRepository
	validate *validator.Validate
}

// NewSchoolService creates a SchoolService.
func NewSchoolService(schools repository.SchoolRepository) *SchoolService {
	return &SchoolService{
		schools:  schools,
		validate: newValidator(),
	}
}

// SchoolInput is the school creation payload.
type SchoolInput struct {
	Name               string          `json:"name" validate:"required,min=2"`
	Type               string          `json:"type" validate:"required"`
	RegistrationNumber string          `json:"registrationNumber" validate:"required"`
	LicenseNumber      string          `json:"licenseNumber" validate:"required"`
	TIN                string          `json:"tin" validate:"required"`
	Location           string          `json:"location" validate:"required"`
	Address            string          `json:"address"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email" validate:"omitempty,email"`
	Website            string          `json:"website"`
	Photo              string          `json:"photo"`
	EstablishedYear    int             `json:"establishedYear"`
	HeadMaster         json.RawMessage `json:"headMaster"`
	StudentsPerClass   json.RawMessage `json:"studentsPerClass"`
	Status             string          `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// SchoolUpdateInput carries partial updates. Identity fields (id,
// userId, registrationNumber) are not updatable.
type SchoolUpdateInput struct {
	Name             *string         `json:"name" validate:"omitempty,min=2"`
	Type             *string         `json:"type"`
	LicenseNumber    *string         `json:"licenseNumber"`
	TIN              *string         `json:"tin"`
	Location         *string         `json:"location"`
	Address          *string         `json:"address"`
	Phone            *string         `json:"phone"`
	Email            *string         `json:"email" validate:"omitempty,email"`
	Website          *string         `json:"website"`
	Photo            *string         `json:"photo"`
	TotalStaff       *int            `json:"totalStaff"`
	TotalStudents    *int            `json:"totalStudents"`
	TotalTeachers    *int            `json:"totalTeachers"`
	TotalCourses     *int            `json:"totalCourses"`
	EstablishedYear  *int            `json:"establishedYear"`
	HeadMaster       json.RawMessage `json:"headMaster"`
	StudentsPerClass json.RawMessage `json:"studentsPerClass"`
	Status           *string         `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// SchoolStats are the stored aggregate counters of the school. They
// are not recomputed from live rows.
type SchoolStats struct {
	TotalStudents    int            `json:"totalStudents"`
	TotalTeachers    int            `json:"totalTeachers"`
	TotalStaff       int            `json:"totalStaff"`
	TotalCourses     int            `json:"totalCourses"`
	StudentsPerClass datatypes.JSON `json:"studentsPerClass"`
	Status           string         `json:"status"`
}

// Create registers the caller's school.
func (s *SchoolService) Create(userID uint, in SchoolInput) (*model.School, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}

	// One school per user
	if _, err := s.schools.ByUserID(userID); err == nil {
		return nil, apperr.SchoolExists()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Three independent uniqueness checks, each with its own code
	if exists, err := s.schools.ExistsByRegistrationNumber(in.RegistrationNumber); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.DuplicateRegNumber()
	}
	if exists, err := s.schools.ExistsByLicenseNumber(in.LicenseNumber); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.DuplicateLicense()
	}
	if exists, err := s.schools.ExistsByTIN(in.TIN); err != nil {
		return nil, err
	} else if exists {
		return nil, apperr.DuplicateTIN()
	}

	school := &model.School{
		UserID:             userID,
		Name:               in.Name,
		Type:               in.Type,
		RegistrationNumber: in.RegistrationNumber,
		LicenseNumber:      in.LicenseNumber,
		TIN:                in.TIN,
		Location:           in.Location,
		Address:            in.Address,
		Phone:              in.Phone,
		Email:              in.Email,
		Website:            in.Website,
		Photo:              in.Photo,
		EstablishedYear:    in.EstablishedYear,
		HeadMaster:         datatypes.JSON(in.HeadMaster),
		StudentsPerClass:   datatypes.JSON(in.StudentsPerClass),
		Status:             in.Status,
	}
	if school.Status == "" {
		school.Status = model.SchoolStatusActive
	}
	if err := s.schools.Create(school); err != nil {
		return nil, err
	}
	return school, nil
}

// MySchool returns the school owned by the user.
func (s *SchoolService) MySchool(userID uint) (*model.School, error) {
	school, err := s.schools.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.SchoolNotFound()
		}
		return nil, err
	}
	return school, nil
}

// ByID returns a school by its id.
func (s *SchoolService) ByID(id uint) (*model.School, error) {
	school, err := s.schools.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.SchoolNotFound()
		}
		return nil, err
	}
	return school, nil
}

// List returns all schools, paginated.
func (s *SchoolService) List(limit, offset int) ([]model.School, error) {
	return s.schools.List(limit, offset)
}

// Update applies a partial update to the caller's school.
func (s *SchoolService) Update(userID uint, in SchoolUpdateInput) (*model.School, error) {
	if err := checkInput(s.validate, in); err != nil {
		return nil, err
	}

	school, err := s.MySchool(userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		school.Name = *in.Name
	}
	if in.Type != nil {
		school.Type = *in.Type
	}
	if in.LicenseNumber != nil {
		school.LicenseNumber = *in.LicenseNumber
	}
	if in.TIN != nil {
		school.TIN = *in.TIN
	}
	if in.Location != nil {
		school.Location = *in.Location
	}
	if in.Address != nil {
		school.Address = *in.Address
	}
	if in.Phone != nil {
		school.Phone = *in.Phone
	}
	if in.Email != nil {
		school.Email = *in.Email
	}
	if in.Website != nil {
		school.Website = *in.Website
	}
	if in.Photo != nil {
		school.Photo = *in.Photo
	}
	if in.TotalStaff != nil {
		school.TotalStaff = *in.TotalStaff
	}
	if in.TotalStudents != nil {
		school.TotalStudents = *in.TotalStudents
	}
	if in.TotalTeachers != nil {
		school.TotalTeachers = *in.TotalTeachers
	}
	if in.TotalCourses != nil {
		school.TotalCourses = *in.TotalCourses
	}
	if in.EstablishedYear != nil {
		school.EstablishedYear = *in.EstablishedYear
	}
	if in.HeadMaster != nil {
		school.HeadMaster = datatypes.JSON(in.HeadMaster)
	}
	if in.StudentsPerClass != nil {
		school.StudentsPerClass = datatypes.JSON(in.StudentsPerClass)
	}
	if in.Status != nil {
		school.Status = *in.Status
	}

	if err := s.schools.Save(school); err != nil {
		return nil, err
	}
	return school, nil
}

// Delete removes the caller's school.
func (s *SchoolService) Delete(userID uint) error {
	school, err := s.MySchool(userID)
	if err != nil {
		return err
	}
	return s.schools.Delete(school.ID)
}

// Stats returns the stored aggregate counters of the caller's school.
func (s *SchoolService) Stats(userID uint) (*SchoolStats, error) {
	school, err := s.MySchool(userID)
	if err != nil {
		return nil, err
	}
	return &SchoolStats{
		TotalStudents:    school.TotalStudents,
		TotalTeachers:    school.TotalTeachers,
		TotalStaff:       school.TotalStaff,
		TotalCourses:     school.TotalCourses,
		StudentsPerClass: school.StudentsPerClass,
		Status:           school.Status,
	}, nil
}

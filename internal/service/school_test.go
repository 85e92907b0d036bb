package service

import (
	"testing"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchool() SchoolInput {
	return SchoolInput{
		Name:               "Greenhill Academy",
		Type:               "Secondary School",
		RegistrationNumber: "REG-001",
		LicenseNumber:      "LIC-001",
		TIN:                "TIN-001",
		Location:           "Kampala",
	}
}

func TestSchoolCreate(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	school, err := svc.Create(1, validSchool())
	require.NoError(t, err)
	assert.NotZero(t, school.ID)
	assert.Equal(t, uint(1), school.UserID)
	assert.Equal(t, "active", school.Status)
}

func TestSchoolCreateSecondSchoolRejected(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	_, err := svc.Create(1, validSchool())
	require.NoError(t, err)

	// A fully distinct payload still fails: the conflict is on the user
	in := validSchool()
	in.Name = "Another School"
	in.RegistrationNumber = "REG-002"
	in.LicenseNumber = "LIC-002"
	in.TIN = "TIN-002"
	_, err = svc.Create(1, in)
	assertCode(t, err, apperr.CodeSchoolExists)
}

func TestSchoolCreateDuplicateIdentifiers(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	_, err := svc.Create(1, validSchool())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*SchoolInput)
		code   apperr.Code
	}{
		{"registration number", func(in *SchoolInput) {}, apperr.CodeDuplicateRegNumber},
		{"license number", func(in *SchoolInput) { in.RegistrationNumber = "REG-X" }, apperr.CodeDuplicateLicense},
		{"tin", func(in *SchoolInput) { in.RegistrationNumber = "REG-X"; in.LicenseNumber = "LIC-X" }, apperr.CodeDuplicateTIN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSchool()
			tt.mutate(&in)
			_, err := svc.Create(2, in)
			assertCode(t, err, tt.code)
		})
	}
}

func TestSchoolCreateValidation(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	in := validSchool()
	in.Name = "G"
	in.TIN = ""
	_, err := svc.Create(1, in)
	ae := assertCode(t, err, apperr.CodeValidation)
	assert.Contains(t, ae.Fields, "name")
	assert.Contains(t, ae.Fields, "tin")
}

func TestMySchool(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	created, err := svc.Create(1, validSchool())
	require.NoError(t, err)

	school, err := svc.MySchool(1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, school.ID)

	_, err = svc.MySchool(99)
	assertCode(t, err, apperr.CodeSchoolNotFound)
}

func TestSchoolUpdate(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	created, err := svc.Create(1, validSchool())
	require.NoError(t, err)

	name := "Renamed Academy"
	staff := 25
	school, err := svc.Update(1, SchoolUpdateInput{Name: &name, TotalStaff: &staff})
	require.NoError(t, err)
	assert.Equal(t, created.ID, school.ID)
	assert.Equal(t, "Renamed Academy", school.Name)
	assert.Equal(t, 25, school.TotalStaff)
	assert.Equal(t, "REG-001", school.RegistrationNumber, "registration number is immutable")
	assert.Equal(t, uint(1), school.UserID)
}

func TestSchoolUpdateWithoutSchool(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	name := "Renamed Academy"
	_, err := svc.Update(1, SchoolUpdateInput{Name: &name})
	assertCode(t, err, apperr.CodeSchoolNotFound)
}

func TestSchoolDelete(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	_, err := svc.Create(1, validSchool())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(1))
	_, err = svc.MySchool(1)
	assertCode(t, err, apperr.CodeSchoolNotFound)

	// The identifiers are free again after deletion
	_, err = svc.Create(2, validSchool())
	require.NoError(t, err)
}

func TestSchoolStats(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	_, err := svc.Create(1, validSchool())
	require.NoError(t, err)

	students, teachers := 340, 18
	_, err = svc.Update(1, SchoolUpdateInput{TotalStudents: &students, TotalTeachers: &teachers})
	require.NoError(t, err)

	stats, err := svc.Stats(1)
	require.NoError(t, err)
	assert.Equal(t, 340, stats.TotalStudents)
	assert.Equal(t, 18, stats.TotalTeachers)
	assert.Equal(t, "active", stats.Status)
}

func TestSchoolList(t *testing.T) {
	store := memory.NewStore()
	svc := NewSchoolService(store.Schools())

	for i, userID := range []uint{1, 2, 3} {
		in := validSchool()
		in.RegistrationNumber = validSchool().RegistrationNumber + string(rune('A'+i))
		in.LicenseNumber = validSchool().LicenseNumber + string(rune('A'+i))
		in.TIN = validSchool().TIN + string(rune('A'+i))
		_, err := svc.Create(userID, in)
		require.NoError(t, err)
	}

	all, err := svc.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := svc.List(2, 1)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

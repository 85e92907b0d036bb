package service

import (
	"testing"

	"github.com/Arison99/School-Management-System/internal/apperr"
	"github.com/Arison99/School-Management-System/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudentService(store *memory.Store) *StudentService {
	svc := NewStudentService(store.Students(), store.Classes())
	svc.now = fixedNow
	return svc
}

func validStudent() StudentInput {
	return StudentInput{
		StudentNumber: "STU-001",
		StudentName:   "Alice Nansubuga",
		DOB:           "2012-03-10",
		FatherName:    "Robert Nansubuga",
		MotherName:    "Grace Nansubuga",
	}
}

func TestStudentAdd(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")

	student, err := svc.Add(class.ID, school.ID, validStudent())
	require.NoError(t, err)
	assert.NotZero(t, student.ID)
	assert.Equal(t, class.ID, student.ClassID)
	assert.Equal(t, "active", student.Status)
	// Age derived from dob against the pinned clock (2024-06-15)
	assert.Equal(t, 12, student.Age)
}

func TestStudentAddExplicitAge(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")

	in := validStudent()
	in.Age = 11
	student, err := svc.Add(class.ID, school.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 11, student.Age, "a supplied age is kept as-is")
}

func TestStudentAddOwnership(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	other := seedSchool(t, store, "b@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")

	_, err := svc.Add(9999, school.ID, validStudent())
	assertCode(t, err, apperr.CodeClassNotFound)

	_, err = svc.Add(class.ID, other.ID, validStudent())
	assertCode(t, err, apperr.CodeAccessDenied)
}

func TestStudentNumberUniqueAcrossSchools(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	other := seedSchool(t, store, "b@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")
	otherClass := seedClass(t, store, other.ID, "Primary One", "2024")

	_, err := svc.Add(class.ID, school.ID, validStudent())
	require.NoError(t, err)

	// The number is taken globally, not per school
	_, err = svc.Add(otherClass.ID, other.ID, validStudent())
	assertCode(t, err, apperr.CodeStudentNumberExists)
}

func TestStudentAddValidation(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")

	tests := []struct {
		name   string
		mutate func(*StudentInput)
		field  string
	}{
		{"missing number", func(in *StudentInput) { in.StudentNumber = "" }, "studentNumber"},
		{"short name", func(in *StudentInput) { in.StudentName = "A" }, "studentName"},
		{"bad dob", func(in *StudentInput) { in.DOB = "10/03/2012" }, "dob"},
		{"bad email", func(in *StudentInput) { in.Email = "nope" }, "email"},
		{"age too high", func(in *StudentInput) { in.Age = 130 }, "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validStudent()
			tt.mutate(&in)
			_, err := svc.Add(class.ID, school.ID, in)
			ae := assertCode(t, err, apperr.CodeValidation)
			assert.Contains(t, ae.Fields, tt.field)
		})
	}
}

func TestStudentUpdate(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")
	student := seedStudent(t, store, class.ID, "STU-001", "Alice")

	name := "Alice Updated"
	status := "inactive"
	updated, err := svc.Update(student.ID, class.ID, school.ID, StudentUpdateInput{
		StudentName: &name,
		Status:      &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", updated.StudentName)
	assert.Equal(t, "inactive", updated.Status)
	assert.Equal(t, "STU-001", updated.StudentNumber, "student number is immutable")
	assert.Equal(t, "2012-03-10", updated.DOB, "untouched fields survive the update")
}

func TestStudentUpdateDOBRecomputesAge(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")
	student := seedStudent(t, store, class.ID, "STU-001", "Alice")

	dob := "2010-12-25"
	clientAge := 55
	updated, err := svc.Update(student.ID, class.ID, school.ID, StudentUpdateInput{
		DOB: &dob,
		Age: &clientAge,
	})
	require.NoError(t, err)
	// Age follows the new dob (birthday not yet reached on 2024-06-15);
	// the client-supplied age loses
	assert.Equal(t, 13, updated.Age)
	assert.Equal(t, "2010-12-25", updated.DOB)
}

func TestStudentUpdateAgeOnly(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")
	student := seedStudent(t, store, class.ID, "STU-001", "Alice")

	age := 14
	updated, err := svc.Update(student.ID, class.ID, school.ID, StudentUpdateInput{Age: &age})
	require.NoError(t, err)
	assert.Equal(t, 14, updated.Age)
}

func TestStudentUpdateWrongClass(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	classA := seedClass(t, store, school.ID, "Primary One", "2024")
	classB := seedClass(t, store, school.ID, "Primary Two", "2024")
	student := seedStudent(t, store, classA.ID, "STU-001", "Alice")

	// Valid student id under the wrong class in the same school
	name := "Alice Updated"
	_, err := svc.Update(student.ID, classB.ID, school.ID, StudentUpdateInput{StudentName: &name})
	assertCode(t, err, apperr.CodeInvalidClass)
}

func TestStudentUpdateCrossTenant(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	other := seedSchool(t, store, "b@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")
	student := seedStudent(t, store, class.ID, "STU-001", "Alice")

	name := "Alice Updated"
	_, err := svc.Update(student.ID, class.ID, other.ID, StudentUpdateInput{StudentName: &name})
	assertCode(t, err, apperr.CodeAccessDenied)

	_, err = svc.Update(9999, class.ID, school.ID, StudentUpdateInput{StudentName: &name})
	assertCode(t, err, apperr.CodeStudentNotFound)
}

func TestStudentDelete(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	other := seedSchool(t, store, "b@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")
	student := seedStudent(t, store, class.ID, "STU-001", "Alice")

	err := svc.Delete(student.ID, class.ID, other.ID)
	assertCode(t, err, apperr.CodeAccessDenied)

	require.NoError(t, svc.Delete(student.ID, class.ID, school.ID))
	err = svc.Delete(student.ID, class.ID, school.ID)
	assertCode(t, err, apperr.CodeStudentNotFound)
}

func TestStudentAll(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	other := seedSchool(t, store, "b@example.com")
	classA := seedClass(t, store, school.ID, "Primary One", "2024")
	classB := seedClass(t, store, school.ID, "Primary Two", "2024")
	otherClass := seedClass(t, store, other.ID, "Primary One", "2024")

	seedStudent(t, store, classA.ID, "STU-001", "Alice")
	seedStudent(t, store, classB.ID, "STU-002", "Bob")
	seedStudent(t, store, otherClass.ID, "STU-003", "Eve")

	students, err := svc.All(school.ID)
	require.NoError(t, err)
	require.Len(t, students, 2)
	for _, s := range students {
		assert.NotEqual(t, "STU-003", s.StudentNumber, "other tenants' students stay invisible")
	}
}

func TestStudentSearch(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")
	other := seedSchool(t, store, "b@example.com")
	class := seedClass(t, store, school.ID, "Primary One", "2024")
	otherClass := seedClass(t, store, other.ID, "Primary One", "2024")

	seedStudent(t, store, class.ID, "STU-001", "Alice Namutebi")
	seedStudent(t, store, class.ID, "STU-002", "Bob Okello")
	seedStudent(t, store, otherClass.ID, "STU-003", "Alice Auma")

	// Case-insensitive name match, scoped to the caller's school
	results, err := svc.Search(school.ID, "ALICE")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "STU-001", results[0].StudentNumber)

	// Number match
	results, err = svc.Search(school.ID, "stu-002")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bob Okello", results[0].StudentName)

	// Parent name match
	results, err = svc.Search(school.ID, "father alice")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStudentSearchQueryTooShort(t *testing.T) {
	store := memory.NewStore()
	svc := newStudentService(store)
	school := seedSchool(t, store, "a@example.com")

	for _, q := range []string{"", "a", "  a  "} {
		_, err := svc.Search(school.ID, q)
		assertCode(t, err, apperr.CodeInvalidQuery)
	}

	// Whitespace padding around a valid query is fine
	_, err := svc.Search(school.ID, "  ab  ")
	require.NoError(t, err)
}

// Package memory provides in-memory implementations of the repository
// interfaces. They mirror the semantics of the GORM implementations
// (including case-insensitive search and the class join on school-wide
// reads) and back the service and handler tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Arison99/School-Management-System/internal/model"
	"github.com/Arison99/School-Management-System/internal/repository"
)

// Store holds all in-memory tables behind one lock.
type Store struct {
	mu       sync.Mutex
	users    map[uint]model.User
	schools  map[uint]model.School
	classes  map[uint]model.Class
	students map[uint]model.Student
	nextID   uint
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uint]model.User),
		schools:  make(map[uint]model.School),
		classes:  make(map[uint]model.Class),
		students: make(map[uint]model.Student),
	}
}

func (s *Store) nextSeq() uint {
	s.nextID++
	return s.nextID
}

// Users returns a UserRepository over the store.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Schools returns a SchoolRepository over the store.
func (s *Store) Schools() repository.SchoolRepository { return &schoolRepo{s} }

// Classes returns a ClassRepository over the store.
func (s *Store) Classes() repository.ClassRepository { return &classRepo{s} }

// Students returns a StudentRepository over the store.
func (s *Store) Students() repository.StudentRepository { return &studentRepo{s} }

type userRepo struct{ s *Store }

func (r *userRepo) Create(user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextSeq()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) ByID(id uint) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepo) ByEmail(email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, user := range r.s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// DeleteUser removes a user directly; used by tests to simulate a
// token whose subject no longer exists.
func (s *Store) DeleteUser(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type schoolRepo struct{ s *Store }

func (r *schoolRepo) Create(school *model.School) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	school.ID = r.s.nextSeq()
	if school.Status == "" {
		school.Status = model.SchoolStatusActive
	}
	school.CreatedAt = time.Now()
	school.UpdatedAt = school.CreatedAt
	r.s.schools[school.ID] = *school
	return nil
}

func (r *schoolRepo) ByID(id uint) (*model.School, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	school, ok := r.s.schools[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &school, nil
}

func (r *schoolRepo) ByUserID(userID uint) (*model.School, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, school := range r.s.schools {
		if school.UserID == userID {
			sc := school
			return &sc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *schoolRepo) ExistsByRegistrationNumber(number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, school := range r.s.schools {
		if school.RegistrationNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *schoolRepo) ExistsByLicenseNumber(number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, school := range r.s.schools {
		if school.LicenseNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *schoolRepo) ExistsByTIN(tin string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, school := range r.s.schools {
		if school.TIN == tin {
			return true, nil
		}
	}
	return false, nil
}

func (r *schoolRepo) List(limit, offset int) ([]model.School, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	schools := make([]model.School, 0, len(r.s.schools))
	for _, school := range r.s.schools {
		schools = append(schools, school)
	}
	sort.Slice(schools, func(i, j int) bool { return schools[i].ID < schools[j].ID })
	if offset > 0 {
		if offset >= len(schools) {
			return nil, nil
		}
		schools = schools[offset:]
	}
	if limit > 0 && limit < len(schools) {
		schools = schools[:limit]
	}
	return schools, nil
}

func (r *schoolRepo) Save(school *model.School) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	school.UpdatedAt = time.Now()
	r.s.schools[school.ID] = *school
	return nil
}

func (r *schoolRepo) Delete(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.schools, id)
	return nil
}

type classRepo struct{ s *Store }

func (r *classRepo) Create(class *model.Class) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	class.ID = r.s.nextSeq()
	if class.Status == "" {
		class.Status = model.ClassStatusActive
	}
	if class.Capacity == 0 {
		class.Capacity = 30
	}
	class.CreatedAt = time.Now()
	class.UpdatedAt = class.CreatedAt
	r.s.classes[class.ID] = *class
	return nil
}

func (r *classRepo) ByID(id uint) (*model.Class, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	class, ok := r.s.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &class, nil
}

func (r *classRepo) Exists(schoolID uint, className, year string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, class := range r.s.classes {
		if class.SchoolID == schoolID && class.ClassName == className && class.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (r *classRepo) ListBySchool(schoolID uint, status string, limit, offset int) ([]model.Class, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var classes []model.Class
	for _, class := range r.s.classes {
		if class.SchoolID != schoolID {
			continue
		}
		if status != "" && class.Status != status {
			continue
		}
		classes = append(classes, class)
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].Year != classes[j].Year {
			return classes[i].Year > classes[j].Year
		}
		return classes[i].ClassName < classes[j].ClassName
	})
	if offset > 0 {
		if offset >= len(classes) {
			return nil, nil
		}
		classes = classes[offset:]
	}
	if limit > 0 && limit < len(classes) {
		classes = classes[:limit]
	}
	return classes, nil
}

func (r *classRepo) Save(class *model.Class) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	class.UpdatedAt = time.Now()
	r.s.classes[class.ID] = *class
	return nil
}

func (r *classRepo) Delete(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.classes, id)
	return nil
}

type studentRepo struct{ s *Store }

func (r *studentRepo) Create(student *model.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	student.ID = r.s.nextSeq()
	if student.Status == "" {
		student.Status = model.StudentStatusActive
	}
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	r.s.students[student.ID] = *student
	return nil
}

func (r *studentRepo) ByID(id uint) (*model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	student, ok := r.s.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &student, nil
}

func (r *studentRepo) ListByClass(classID uint) ([]model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var students []model.Student
	for _, student := range r.s.students {
		if student.ClassID == classID {
			students = append(students, student)
		}
	}
	sortByNumber(students)
	return students, nil
}

func (r *studentRepo) ListBySchool(schoolID uint) ([]model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var students []model.Student
	for _, student := range r.s.students {
		if r.inSchool(student, schoolID) {
			students = append(students, student)
		}
	}
	sortByNumber(students)
	return students, nil
}

func (r *studentRepo) Search(schoolID uint, query string) ([]model.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(query)
	var students []model.Student
	for _, student := range r.s.students {
		if !r.inSchool(student, schoolID) {
			continue
		}
		if strings.Contains(strings.ToLower(student.StudentNumber), q) ||
			strings.Contains(strings.ToLower(student.StudentName), q) ||
			strings.Contains(strings.ToLower(student.FatherName), q) ||
			strings.Contains(strings.ToLower(student.MotherName), q) {
			students = append(students, student)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].StudentName < students[j].StudentName })
	return students, nil
}

// inSchool walks the class join; callers hold the lock.
func (r *studentRepo) inSchool(student model.Student, schoolID uint) bool {
	class, ok := r.s.classes[student.ClassID]
	return ok && class.SchoolID == schoolID
}

func (r *studentRepo) CountByClass(classID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, student := range r.s.students {
		if student.ClassID == classID {
			count++
		}
	}
	return count, nil
}

func (r *studentRepo) CountByClassIDs(classIDs []uint) (map[uint]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[uint]int64, len(classIDs))
	wanted := make(map[uint]bool, len(classIDs))
	for _, id := range classIDs {
		wanted[id] = true
	}
	for _, student := range r.s.students {
		if wanted[student.ClassID] {
			counts[student.ClassID]++
		}
	}
	return counts, nil
}

func (r *studentRepo) NumberExists(studentNumber string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, student := range r.s.students {
		if student.StudentNumber == studentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *studentRepo) Save(student *model.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	student.UpdatedAt = time.Now()
	r.s.students[student.ID] = *student
	return nil
}

func (r *studentRepo) Delete(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.students, id)
	return nil
}

func sortByNumber(students []model.Student) {
	sort.Slice(students, func(i, j int) bool {
		return students[i].StudentNumber < students[j].StudentNumber
	})
}

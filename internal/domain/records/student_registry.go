package records

import (
	"slices"
	"strings"
)

// StudentRegistry owns every Student and assigns their ids.
type StudentRegistry struct {
	students []*Student
	nextID   StudentID
}

// NewStudentRegistry creates an empty registry whose first id is 1.
func NewStudentRegistry() *StudentRegistry {
	return &StudentRegistry{
		students: make([]*Student, 0),
		nextID:   1,
	}
}

// FindOrCreate returns the first student whose name matches case-insensitively,
// or registers a new student under the next id. created reports which happened.
func (r *StudentRegistry) FindOrCreate(name string) (student *Student, created bool) {
	name = strings.TrimSpace(name)
	if existing, err := r.FindByName(name); err == nil {
		return existing, false
	}

	student = newStudent(r.nextID, name)
	r.nextID++
	r.students = append(r.students, student)
	return student, true
}

// FindByName returns the first student whose name matches case-insensitively.
func (r *StudentRegistry) FindByName(name string) (*Student, error) {
	name = strings.TrimSpace(name)
	for _, s := range r.students {
		if strings.EqualFold(s.name, name) {
			return s, nil
		}
	}
	return nil, ErrStudentNotFound
}

// FindByID returns the student with the given id.
func (r *StudentRegistry) FindByID(id StudentID) (*Student, error) {
	// Ids are dense and never reused, so the id doubles as an index.
	if id < 1 || int(id) > len(r.students) {
		return nil, ErrStudentNotFound
	}
	return r.students[id-1], nil
}

// All returns every student in registration order.
func (r *StudentRegistry) All() []*Student {
	return slices.Clone(r.students)
}

// Len returns the number of registered students.
func (r *StudentRegistry) Len() int {
	return len(r.students)
}

package records

import (
	"slices"
	"strings"
)

// CourseRegistry owns every Course, assigns their ids and keeps names and codes unique.
type CourseRegistry struct {
	courses []*Course
	nextID  CourseID
}

// NewCourseRegistry creates an empty registry whose first id is 1.
func NewCourseRegistry() *CourseRegistry {
	return &CourseRegistry{
		courses: make([]*Course, 0),
		nextID:  1,
	}
}

// Add registers a new course. It is rejected with ErrDuplicateCourse when any
// existing course has the same name or the same code, ignoring case, and with
// ErrInvalidCourse when capacity is negative. A rejected course does not
// consume an id.
func (r *CourseRegistry) Add(code, name string, capacity int) (*Course, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if capacity < 0 {
		return nil, ErrInvalidCourse
	}

	for _, existing := range r.courses {
		if strings.EqualFold(existing.name, name) || strings.EqualFold(existing.code, code) {
			return nil, ErrDuplicateCourse
		}
	}

	course := newCourse(r.nextID, code, name, capacity)
	r.nextID++
	r.courses = append(r.courses, course)
	return course, nil
}

// FindByName returns the course whose name matches case-insensitively.
func (r *CourseRegistry) FindByName(name string) (*Course, error) {
	name = strings.TrimSpace(name)
	for _, c := range r.courses {
		if strings.EqualFold(c.name, name) {
			return c, nil
		}
	}
	return nil, ErrCourseNotFound
}

// FindByCode returns the course whose code matches case-insensitively.
func (r *CourseRegistry) FindByCode(code string) (*Course, error) {
	code = strings.TrimSpace(code)
	for _, c := range r.courses {
		if strings.EqualFold(c.code, code) {
			return c, nil
		}
	}
	return nil, ErrCourseNotFound
}

// FindByID returns the course with the given id.
func (r *CourseRegistry) FindByID(id CourseID) (*Course, error) {
	if id < 1 || int(id) > len(r.courses) {
		return nil, ErrCourseNotFound
	}
	return r.courses[id-1], nil
}

// All returns every course in creation order.
func (r *CourseRegistry) All() []*Course {
	return slices.Clone(r.courses)
}

// Len returns the number of registered courses.
func (r *CourseRegistry) Len() int {
	return len(r.courses)
}

// CurrentGrades returns the student's current grade in each enrolled course that
// has one, in enrollment order. A course the student re-enrolled in counts once.
func (r *CourseRegistry) CurrentGrades(s *Student) []int {
	grades := make([]int, 0, len(s.courses))
	seen := make(map[CourseID]bool, len(s.courses))
	for _, id := range s.courses {
		if seen[id] {
			continue
		}
		seen[id] = true

		course, err := r.FindByID(id)
		if err != nil {
			continue
		}
		if grade, err := course.Grade(s.id); err == nil {
			grades = append(grades, grade)
		}
	}
	return grades
}

package records

import (
	"slices"
	"strconv"
)

// StudentID identifies a student. Ids start at 1 and are never reused.
type StudentID int

func (id StudentID) String() string {
	return strconv.Itoa(int(id))
}

// Student is a person known to the records system.
type Student struct {
	id      StudentID
	name    string
	courses []CourseID // enrollment order, written only by Enroll
	history []int      // every grade ever assigned, in assignment order
}

func newStudent(id StudentID, name string) *Student {
	return &Student{
		id:      id,
		name:    name,
		courses: make([]CourseID, 0),
		history: make([]int, 0),
	}
}

// ID returns the student id
func (s *Student) ID() StudentID {
	return s.id
}

// Name returns the display name
func (s *Student) Name() string {
	return s.name
}

// Rename changes the display name. The id is unaffected.
func (s *Student) Rename(name string) {
	s.name = name
}

// Courses returns the ids of enrolled courses in enrollment order.
func (s *Student) Courses() []CourseID {
	return slices.Clone(s.courses)
}

// GradeHistory returns every grade assigned to the student, including grades
// that were later overwritten in a course.
func (s *Student) GradeHistory() []int {
	return slices.Clone(s.history)
}

// IsEnrolledIn reports whether the course is in the student's course list.
func (s *Student) IsEnrolledIn(id CourseID) bool {
	return slices.Contains(s.courses, id)
}

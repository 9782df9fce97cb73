package records

import (
	"maps"
	"slices"
	"strconv"
)

// CourseID identifies a course. Ids start at 1 and are never reused.
type CourseID int

func (id CourseID) String() string {
	return strconv.Itoa(int(id))
}

// Course is an offering students can enroll in and be graded for.
type Course struct {
	id       CourseID
	code     string
	name     string
	capacity int
	roster   []StudentID
	grades   map[StudentID]int
}

func newCourse(id CourseID, code, name string, capacity int) *Course {
	return &Course{
		id:       id,
		code:     code,
		name:     name,
		capacity: capacity,
		roster:   make([]StudentID, 0),
		grades:   make(map[StudentID]int),
	}
}

// ID returns the course id
func (c *Course) ID() CourseID {
	return c.id
}

// Code returns the course code (e.g., "CS101")
func (c *Course) Code() string {
	return c.code
}

// Name returns the course name
func (c *Course) Name() string {
	return c.name
}

// Capacity returns the maximum roster size fixed at creation
func (c *Course) Capacity() int {
	return c.capacity
}

// Roster returns enrolled student ids in enrollment order.
func (c *Course) Roster() []StudentID {
	return slices.Clone(c.roster)
}

// Enrolled returns the roster size.
func (c *Course) Enrolled() int {
	return len(c.roster)
}

// SeatsLeft returns how many more enrollments the course accepts.
func (c *Course) SeatsLeft() int {
	return max(c.capacity-len(c.roster), 0)
}

// IsFull reports whether the roster has reached capacity.
func (c *Course) IsFull() bool {
	return len(c.roster) >= c.capacity
}

// HasStudent reports whether the student is on the roster.
func (c *Course) HasStudent(id StudentID) bool {
	return slices.Contains(c.roster, id)
}

// Grade returns the current grade of a student in this course.
// Returns ErrNoGradeAssigned if the student has not been graded here.
func (c *Course) Grade(id StudentID) (int, error) {
	grade, ok := c.grades[id]
	if !ok {
		return 0, ErrNoGradeAssigned
	}
	return grade, nil
}

// Grades returns a copy of the per-student grade map.
func (c *Course) Grades() map[StudentID]int {
	return maps.Clone(c.grades)
}

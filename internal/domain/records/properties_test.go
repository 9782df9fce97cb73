package records

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestProperty_IdentityMonotonicity checks that N distinct creations yield ids 1..N in
// order, and that lookups by an existing name never consume an id.
func TestProperty_IdentityMonotonicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewStudentRegistry()
		names := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[a-z]{1,8}`), 1, 30, func(s string) string { return s },
		).Draw(t, "names")

		for i, name := range names {
			s, created := reg.FindOrCreate(name)
			if !created {
				t.Fatalf("name %q should create a new student", name)
			}
			if s.ID() != StudentID(i+1) {
				t.Fatalf("expected id %d, got %d", i+1, s.ID())
			}

			// Repeat lookup with a different case
			again, created := reg.FindOrCreate(strings.ToUpper(name))
			if created || again.ID() != s.ID() {
				t.Fatalf("lookup of %q must return id %d", name, s.ID())
			}
		}

		if reg.Len() != len(names) {
			t.Fatalf("expected %d students, got %d", len(names), reg.Len())
		}
	})
}

// TestProperty_CapacityEnforcement checks that a course of capacity k accepts exactly
// k enrollments and rejects the rest with ErrCourseFull.
func TestProperty_CapacityEnforcement(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(0, 20).Draw(t, "capacity")
		attempts := rapid.IntRange(0, 30).Draw(t, "attempts")

		courses := NewCourseRegistry()
		course, err := courses.Add("CS101", "Intro", capacity)
		if err != nil {
			t.Fatalf("add course: %v", err)
		}
		students := NewStudentRegistry()

		accepted := 0
		for i := 0; i < attempts; i++ {
			s, _ := students.FindOrCreate(fmt.Sprintf("student-%d", i))
			err := Enroll(course, s, Policy{})
			switch {
			case err == nil:
				accepted++
			case i < capacity:
				t.Fatalf("enrollment %d rejected below capacity %d: %v", i, capacity, err)
			default:
				if !errors.Is(err, ErrCourseFull) {
					t.Fatalf("expected ErrCourseFull, got %v", err)
				}
			}
		}

		want := min(capacity, attempts)
		if accepted != want || course.Enrolled() != want {
			t.Fatalf("capacity %d attempts %d: accepted %d roster %d", capacity, attempts, accepted, course.Enrolled())
		}
	})
}

// TestProperty_RosterPairing runs random enroll/grade sequences and checks that a
// student is on a roster iff the course is in the student's list, and that grades
// only exist for rostered students.
func TestProperty_RosterPairing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		courses := NewCourseRegistry()
		students := NewStudentRegistry()
		allowReenroll := rapid.Bool().Draw(t, "allowReenroll")
		policy := Policy{AllowReenroll: allowReenroll}

		numCourses := rapid.IntRange(1, 5).Draw(t, "numCourses")
		for i := 0; i < numCourses; i++ {
			capacity := rapid.IntRange(0, 4).Draw(t, "capacity")
			_, err := courses.Add(fmt.Sprintf("C%d", i), fmt.Sprintf("Course %d", i), capacity)
			if err != nil {
				t.Fatalf("add course: %v", err)
			}
		}
		numStudents := rapid.IntRange(1, 6).Draw(t, "numStudents")
		for i := 0; i < numStudents; i++ {
			students.FindOrCreate(fmt.Sprintf("S%d", i))
		}

		numOps := rapid.IntRange(1, 60).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			course, _ := courses.FindByID(CourseID(rapid.IntRange(1, numCourses).Draw(t, "course")))
			student, _ := students.FindByID(StudentID(rapid.IntRange(1, numStudents).Draw(t, "student")))

			if rapid.Bool().Draw(t, "enroll") {
				beforeRoster, beforeCourses := course.Enrolled(), len(student.Courses())
				if err := Enroll(course, student, policy); err != nil {
					if course.Enrolled() != beforeRoster || len(student.Courses()) != beforeCourses {
						t.Fatalf("rejected enrollment mutated state: %v", err)
					}
				}
			} else {
				before := len(student.GradeHistory())
				grade := rapid.IntRange(0, 100).Draw(t, "grade")
				if err := SetGrade(course, student, grade); err != nil && len(student.GradeHistory()) != before {
					t.Fatalf("rejected grade mutated history: %v", err)
				}
			}
		}

		for _, c := range courses.All() {
			for _, s := range students.All() {
				onRoster := countStudent(c.Roster(), s.ID())
				inList := countCourse(s.Courses(), c.ID())
				if onRoster != inList {
					t.Fatalf("pairing broken: course %d roster has student %d %d times, student lists course %d times",
						c.ID(), s.ID(), onRoster, inList)
				}
				if !allowReenroll && onRoster > 1 {
					t.Fatalf("student %d enrolled %d times in course %d without reenroll policy", s.ID(), onRoster, c.ID())
				}
				if _, err := c.Grade(s.ID()); err == nil && onRoster == 0 {
					t.Fatalf("student %d graded in course %d without enrollment", s.ID(), c.ID())
				}
			}
			if c.Enrolled() > c.Capacity() {
				t.Fatalf("course %d over capacity: %d > %d", c.ID(), c.Enrolled(), c.Capacity())
			}
		}
	})
}

func TestProperty_AverageWithinBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		grades := rapid.SliceOfN(rapid.IntRange(0, 100), 1, 50).Draw(t, "grades")
		avg := Average(grades)

		lo, hi := grades[0], grades[0]
		for _, g := range grades {
			lo, hi = min(lo, g), max(hi, g)
		}
		require.GreaterOrEqual(t, avg, float64(lo))
		require.LessOrEqual(t, avg, float64(hi))
	})
}

func countStudent(ids []StudentID, id StudentID) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}

func countCourse(ids []CourseID, id CourseID) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}

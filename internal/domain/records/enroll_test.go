package records

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// setup creates one course of the given capacity and the named students.
func setup(t *testing.T, capacity int, names ...string) (*Course, []*Student) {
	t.Helper()
	courses := NewCourseRegistry()
	course, err := courses.Add("CS101", "Intro", capacity)
	require.NoError(t, err)

	students := NewStudentRegistry()
	result := make([]*Student, 0, len(names))
	for _, n := range names {
		s, _ := students.FindOrCreate(n)
		result = append(result, s)
	}
	return course, result
}

func TestEnroll_PairsBothSides(t *testing.T) {
	course, students := setup(t, 2, "Bob")
	bob := students[0]

	err := Enroll(course, bob, Policy{})

	require.NoError(t, err)
	require.Equal(t, []StudentID{bob.ID()}, course.Roster())
	require.Equal(t, []CourseID{course.ID()}, bob.Courses())
	require.True(t, bob.IsEnrolledIn(course.ID()))
	require.True(t, course.HasStudent(bob.ID()))
}

func TestEnroll_CourseFull(t *testing.T) {
	course, students := setup(t, 1, "Bob", "Carl")
	bob, carl := students[0], students[1]

	require.NoError(t, Enroll(course, bob, Policy{}))
	err := Enroll(course, carl, Policy{})

	require.ErrorIs(t, err, ErrCourseFull)
	require.Equal(t, 1, course.Enrolled())
	require.Empty(t, carl.Courses(), "rejected enrollment must not touch the student")
}

func TestEnroll_AlreadyEnrolled(t *testing.T) {
	course, students := setup(t, 5, "Bob")
	bob := students[0]

	require.NoError(t, Enroll(course, bob, Policy{}))
	err := Enroll(course, bob, Policy{})

	require.ErrorIs(t, err, ErrAlreadyEnrolled)
	require.Equal(t, 1, course.Enrolled())
	require.Len(t, bob.Courses(), 1)
}

func TestEnroll_AllowReenrollTakesAnotherSeat(t *testing.T) {
	course, students := setup(t, 2, "Bob")
	bob := students[0]
	policy := Policy{AllowReenroll: true}

	require.NoError(t, Enroll(course, bob, policy))
	require.NoError(t, Enroll(course, bob, policy))
	err := Enroll(course, bob, policy)

	require.ErrorIs(t, err, ErrCourseFull)
	require.Equal(t, []StudentID{bob.ID(), bob.ID()}, course.Roster())
	require.Len(t, bob.Courses(), 2)
}

func TestEnroll_Nil(t *testing.T) {
	course, _ := setup(t, 1)

	require.ErrorIs(t, Enroll(course, nil, Policy{}), ErrNilEntity)
	require.ErrorIs(t, Enroll(nil, nil, Policy{}), ErrNilEntity)
	require.Equal(t, 0, course.Enrolled())
}

func TestSetGrade_RequiresEnrollment(t *testing.T) {
	course, students := setup(t, 1, "Bob")
	bob := students[0]

	err := SetGrade(course, bob, 90)

	require.ErrorIs(t, err, ErrNotEnrolled)
	require.Empty(t, course.Grades())
	require.Empty(t, bob.GradeHistory())
}

func TestSetGrade_OverwritesCourseAppendsHistory(t *testing.T) {
	course, students := setup(t, 1, "Bob")
	bob := students[0]
	require.NoError(t, Enroll(course, bob, Policy{}))

	require.NoError(t, SetGrade(course, bob, 70))
	require.NoError(t, SetGrade(course, bob, 95))

	grade, err := course.Grade(bob.ID())
	require.NoError(t, err)
	require.Equal(t, 95, grade)
	require.Equal(t, []int{70, 95}, bob.GradeHistory())
}

func TestCourse_Grade_NoGradeAssigned(t *testing.T) {
	course, students := setup(t, 1, "Bob")
	bob := students[0]
	require.NoError(t, Enroll(course, bob, Policy{}))

	_, err := course.Grade(bob.ID())

	require.ErrorIs(t, err, ErrNoGradeAssigned)
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		grades []int
		want   float64
	}{
		{name: "empty", grades: nil, want: 0.0},
		{name: "single", grades: []int{95}, want: 95.0},
		{name: "three", grades: []int{70, 80, 90}, want: 80.0},
		{name: "fractional", grades: []int{1, 2}, want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Average(tt.grades), 1e-9)
		})
	}
}

func TestGradeBounds_DefaultAcceptsAnyScore(t *testing.T) {
	bounds := DefaultGradeBounds()

	require.False(t, bounds.Bounded())
	for _, g := range []int{math.MinInt, -5, 0, 100, 150, math.MaxInt} {
		require.NoError(t, bounds.Check(g))
	}
	require.Equal(t, "[*, *]", bounds.String())
}

func TestGradeBounds_Check(t *testing.T) {
	bounds := GradeBounds{Min: 0, Max: 100}

	require.True(t, bounds.Bounded())
	require.NoError(t, bounds.Check(0))
	require.NoError(t, bounds.Check(100))
	require.ErrorIs(t, bounds.Check(-1), ErrGradeOutOfRange)
	require.ErrorIs(t, bounds.Check(101), ErrGradeOutOfRange)
	require.Contains(t, bounds.Check(150).Error(), "150 not in [0, 100]")
}

func TestGradeBounds_HalfOpen(t *testing.T) {
	bounds := DefaultGradeBounds()
	bounds.Min = 0

	require.True(t, bounds.Bounded())
	require.NoError(t, bounds.Check(1000))
	require.ErrorIs(t, bounds.Check(-1), ErrGradeOutOfRange)
	require.Equal(t, "[0, *]", bounds.String())
}

package records

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCourseRegistry(t *testing.T) {
	reg := NewCourseRegistry()
	require.NotNil(t, reg)
	require.Empty(t, reg.All())
}

func TestCourseRegistry_Add(t *testing.T) {
	reg := NewCourseRegistry()

	course, err := reg.Add("CS101", "Intro", 30)

	require.NoError(t, err)
	require.Equal(t, CourseID(1), course.ID())
	require.Equal(t, "CS101", course.Code())
	require.Equal(t, "Intro", course.Name())
	require.Equal(t, 30, course.Capacity())
	require.Empty(t, course.Roster())
	require.Len(t, reg.All(), 1)
}

func TestCourseRegistry_Add_Duplicate(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		cname string
	}{
		{name: "same name different code", code: "CS999", cname: "Intro"},
		{name: "same code different name", code: "CS101", cname: "Advanced"},
		{name: "same name other case", code: "MA200", cname: "INTRO"},
		{name: "same code other case", code: "cs101", cname: "Calculus"},
		{name: "both equal", code: "CS101", cname: "Intro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewCourseRegistry()
			_, err := reg.Add("CS101", "Intro", 1)
			require.NoError(t, err)

			course, err := reg.Add(tt.code, tt.cname, 10)

			require.ErrorIs(t, err, ErrDuplicateCourse)
			require.Nil(t, course)
			require.Equal(t, 1, reg.Len(), "registry size must be unchanged")
		})
	}
}

func TestCourseRegistry_Add_NegativeCapacity(t *testing.T) {
	reg := NewCourseRegistry()

	_, err := reg.Add("CS101", "Intro", -1)

	require.ErrorIs(t, err, ErrInvalidCourse)
	require.Equal(t, 0, reg.Len())
}

func TestCourseRegistry_Add_BlankFieldsAccepted(t *testing.T) {
	reg := NewCourseRegistry()

	course, err := reg.Add("", "Seminar", 4)
	require.NoError(t, err)
	require.Equal(t, CourseID(1), course.ID())
	require.Empty(t, course.Code())

	// Blank codes still collide with each other.
	_, err = reg.Add("  ", "Workshop", 4)
	require.ErrorIs(t, err, ErrDuplicateCourse)
	require.Equal(t, 1, reg.Len())
}

func TestCourseRegistry_Add_RejectionDoesNotConsumeID(t *testing.T) {
	reg := NewCourseRegistry()
	_, err := reg.Add("CS101", "Intro", 1)
	require.NoError(t, err)
	_, err = reg.Add("CS101", "Other", 1)
	require.Error(t, err)

	next, err := reg.Add("MA101", "Calculus", 1)
	require.NoError(t, err)
	require.Equal(t, CourseID(2), next.ID())
}

func TestCourseRegistry_Add_ZeroCapacity(t *testing.T) {
	reg := NewCourseRegistry()

	course, err := reg.Add("SEM0", "Closed Seminar", 0)

	require.NoError(t, err)
	require.True(t, course.IsFull())
	require.Equal(t, 0, course.SeatsLeft())
}

func TestCourseRegistry_Find(t *testing.T) {
	reg := NewCourseRegistry()
	intro, _ := reg.Add("CS101", "Intro", 5)
	calc, _ := reg.Add("MA101", "Calculus", 5)

	byName, err := reg.FindByName("calculus")
	require.NoError(t, err)
	require.Same(t, calc, byName)

	byCode, err := reg.FindByCode("cs101")
	require.NoError(t, err)
	require.Same(t, intro, byCode)

	byID, err := reg.FindByID(2)
	require.NoError(t, err)
	require.Same(t, calc, byID)
}

func TestCourseRegistry_Find_NotFound(t *testing.T) {
	reg := NewCourseRegistry()
	_, _ = reg.Add("CS101", "Intro", 5)

	_, err := reg.FindByName("Physics")
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = reg.FindByCode("PH100")
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = reg.FindByID(7)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseRegistry_CurrentGrades(t *testing.T) {
	courses := NewCourseRegistry()
	students := NewStudentRegistry()
	intro, _ := courses.Add("CS101", "Intro", 5)
	calc, _ := courses.Add("MA101", "Calculus", 5)
	ungraded, _ := courses.Add("PH101", "Physics", 5)
	bob, _ := students.FindOrCreate("Bob")

	for _, c := range []*Course{intro, calc, ungraded} {
		require.NoError(t, Enroll(c, bob, Policy{}))
	}
	require.NoError(t, SetGrade(intro, bob, 60))
	require.NoError(t, SetGrade(intro, bob, 90)) // overwrite
	require.NoError(t, SetGrade(calc, bob, 70))

	require.Equal(t, []int{90, 70}, courses.CurrentGrades(bob))
	require.Equal(t, []int{60, 90, 70}, bob.GradeHistory())
}

func TestCourseRegistry_CurrentGrades_ReenrolledCountsOnce(t *testing.T) {
	courses := NewCourseRegistry()
	students := NewStudentRegistry()
	intro, _ := courses.Add("CS101", "Intro", 5)
	bob, _ := students.FindOrCreate("Bob")

	require.NoError(t, Enroll(intro, bob, Policy{AllowReenroll: true}))
	require.NoError(t, Enroll(intro, bob, Policy{AllowReenroll: true}))
	require.NoError(t, SetGrade(intro, bob, 80))

	require.Equal(t, []int{80}, courses.CurrentGrades(bob))
}

package roster

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/registrar/internal/application/enrollment"
	"github.com/zjrosen/registrar/internal/domain/records"
)

func TestLoader_Apply(t *testing.T) {
	ctx := context.Background()
	svc := enrollment.NewService()
	loader := NewLoader(svc)

	doc, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	report := loader.Apply(ctx, "roster.yaml", doc)

	// 2 courses, Bob x2 enrollments + 1 grade, Dana registered.
	require.Equal(t, 6, report.Applied)
	require.Zero(t, report.Unchanged)
	require.Equal(t, 1, report.Rejected())
	require.Equal(t, "Carl in Intro", report.Rejections[0].Entry)
	require.ErrorIs(t, report.Rejections[0].Err, records.ErrCourseFull)

	bob, err := svc.StudentByName("Bob")
	require.NoError(t, err)
	avg, err := svc.AverageGrade(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, 95.0, avg)

	// Carl was registered by the rejected enrollment.
	students, courses := svc.Counts()
	require.Equal(t, 3, students)
	require.Equal(t, 2, courses)
}

func TestLoader_ApplyTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := enrollment.NewService()
	loader := NewLoader(svc)

	doc, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	loader.Apply(ctx, "roster.yaml", doc)
	before := svc.Students()

	report := loader.Apply(ctx, "roster.yaml", doc)
	require.Zero(t, report.Applied)
	require.Equal(t, 6, report.Unchanged)
	require.Equal(t, 1, report.Rejected())

	require.Equal(t, before, svc.Students())
}

func TestLoader_RejectsConflicts(t *testing.T) {
	ctx := context.Background()
	svc := enrollment.NewService(enrollment.WithGradeBounds(records.GradeBounds{Min: 0, Max: 100}))
	_, err := svc.AddCourse(ctx, "CS101", "Intro", 5)
	require.NoError(t, err)

	grade := 150
	doc := Document{
		Courses: []CourseEntry{
			{Code: "CS101", Name: "Intro", Capacity: 9}, // same code, different capacity
			{Code: "", Name: "Nameless", Capacity: 1},
		},
		Students: []StudentEntry{
			{Name: "  "},
			{Name: "Bob", Enrollments: []EnrollmentEntry{
				{Course: "Ghost"},
				{Course: "CS101", Grade: &grade},
			}},
		},
	}

	report := NewLoader(svc).Apply(ctx, "inline", doc)

	require.Equal(t, 1, report.Applied) // Bob enrolled in CS101
	entries := make([]string, 0, report.Rejected())
	for _, r := range report.Rejections {
		entries = append(entries, r.Entry)
	}
	require.Equal(t, []string{
		"course CS101",
		"course ",
		"student",
		"Bob in Ghost",
		"grade 150 for Bob in CS101",
	}, entries)
	require.ErrorIs(t, report.Rejections[0].Err, records.ErrDuplicateCourse)
	require.EqualError(t, report.Rejections[1].Err, "course code and name are required")
	require.ErrorIs(t, report.Rejections[3].Err, records.ErrCourseNotFound)
	require.ErrorIs(t, report.Rejections[4].Err, records.ErrGradeOutOfRange)
	require.Contains(t, report.Rejections[4].String(), "grade out of range")
}

func TestLoader_PublishesSummary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := enrollment.NewService()
	ch := svc.Events().Subscribe(ctx)

	NewLoader(svc).Apply(ctx, "empty.yaml", Document{})

	evt := <-ch
	require.Equal(t, "roster empty.yaml loaded: 0 applied, 0 rejected", enrollment.Describe(evt))
}

func TestLoader_LoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	svc := enrollment.NewService()
	report, err := NewLoader(svc).LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, path, report.Source)
	require.Equal(t, 6, report.Applied)

	_, err = NewLoader(svc).LoadFile(context.Background(), filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

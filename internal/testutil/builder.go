// Package testutil builds seeded enrollment services for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/registrar/internal/application/enrollment"
)

// step is one recorded builder call, replayed against the service by Build.
type step func(ctx context.Context, t *testing.T, svc *enrollment.Service)

// Builder records courses, students and enrollments and applies them in the
// order they were added.
type Builder struct {
	t     *testing.T
	opts  []enrollment.Option
	steps []step
}

// NewBuilder creates a builder whose service is configured with opts.
func NewBuilder(t *testing.T, opts ...enrollment.Option) *Builder {
	t.Helper()
	return &Builder{t: t, opts: opts}
}

// WithCourse adds a course.
func (b *Builder) WithCourse(code, name string, capacity int) *Builder {
	b.steps = append(b.steps, func(ctx context.Context, t *testing.T, svc *enrollment.Service) {
		_, err := svc.AddCourse(ctx, code, name, capacity)
		require.NoError(t, err)
	})
	return b
}

// WithStudent registers a student without enrolling them.
func (b *Builder) WithStudent(name string) *Builder {
	b.steps = append(b.steps, func(ctx context.Context, _ *testing.T, svc *enrollment.Service) {
		svc.FindOrCreateStudent(ctx, name)
	})
	return b
}

// WithEnrollment enrolls a student (registering them if needed) and assigns
// each grade in order.
func (b *Builder) WithEnrollment(student, course string, grades ...int) *Builder {
	b.steps = append(b.steps, func(ctx context.Context, t *testing.T, svc *enrollment.Service) {
		view, err := svc.EnrollByName(ctx, student, course)
		require.NoError(t, err)
		for _, g := range grades {
			require.NoError(t, svc.AssignGrade(ctx, view.ID, course, g))
		}
	})
	return b
}

// Build creates the service and replays every step. Any rejection fails the test.
func (b *Builder) Build() *enrollment.Service {
	b.t.Helper()
	ctx := context.Background()
	svc := enrollment.NewService(b.opts...)

	for _, apply := range b.steps {
		apply(ctx, b.t, svc)
	}
	return svc
}

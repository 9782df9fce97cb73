package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/registrar/internal/cachemanager"
	"github.com/zjrosen/registrar/internal/domain/records"
	"github.com/zjrosen/registrar/internal/flags"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/pubsub"
	"github.com/zjrosen/registrar/internal/tracing"
)

// Option configures the Service.
type Option func(*Service)

// WithFlags applies the feature flags that change record-keeping rules.
func WithFlags(f *flags.Registry) Option {
	return func(s *Service) {
		s.policy.AllowReenroll = f.Enabled(flags.FlagAllowReenroll)
		s.legacyAverage = f.Enabled(flags.FlagLegacyGradeHistory)
	}
}

// WithGradeBounds sets the inclusive range AssignGrade accepts.
func WithGradeBounds(b records.GradeBounds) Option {
	return func(s *Service) {
		s.bounds = b
	}
}

// WithTracer sets the tracer used for operation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithEventBus sets the broker mutations are published on.
func WithEventBus(bus *pubsub.Broker[Change]) Option {
	return func(s *Service) {
		if bus != nil {
			s.events = bus
		}
	}
}

// WithAverageCacheTTL sets how long computed averages stay cached.
// Zero disables caching.
func WithAverageCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithAverageCache replaces the in-memory average cache.
func WithAverageCache(cache cachemanager.CacheManager[records.StudentID, float64]) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// Service serializes every change to the student and course registries.
type Service struct {
	mu       sync.RWMutex
	students *records.StudentRegistry
	courses  *records.CourseRegistry

	policy        records.Policy
	legacyAverage bool
	bounds        records.GradeBounds

	tracer   trace.Tracer
	events   *pubsub.Broker[Change]
	cache    cachemanager.CacheManager[records.StudentID, float64]
	cacheTTL time.Duration
	averages *cachemanager.ReadThroughCache[records.StudentID, float64]
}

// NewService creates a Service with empty registries.
func NewService(opts ...Option) *Service {
	s := &Service{
		students: records.NewStudentRegistry(),
		courses:  records.NewCourseRegistry(),
		bounds:   records.DefaultGradeBounds(),
		tracer:   noop.NewTracerProvider().Tracer("enrollment"),
		events:   pubsub.NewBroker[Change](),
		cacheTTL: cachemanager.DefaultExpiration,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cache == nil {
		s.cache = cachemanager.NewInMemoryCacheManager[records.StudentID, float64](
			"average", s.cacheTTL, cachemanager.DefaultCleanupInterval)
	}
	s.averages = cachemanager.NewReadThroughCache(s.cache, s.computeAverage, s.cacheTTL)

	return s
}

// Events returns the broker mutations are published on.
func (s *Service) Events() *pubsub.Broker[Change] {
	return s.events
}

// GradeBounds returns the accepted grade range.
func (s *Service) GradeBounds() records.GradeBounds {
	return s.bounds
}

// AddCourse registers a new course.
func (s *Service) AddCourse(ctx context.Context, code, name string, capacity int) (view CourseView, err error) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"AddCourse",
		attribute.String(tracing.AttrCourseCode, code),
		attribute.String(tracing.AttrCourseName, name),
	)
	defer func() { tracing.End(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.courses.Add(code, name, capacity)
	if err != nil {
		log.Warn(log.CatRegistry, "Course rejected", "code", code, "name", name, "capacity", capacity, "error", err)
		return CourseView{}, fmt.Errorf("add course %s %q: %w", code, name, err)
	}

	span.SetAttributes(attribute.Int(tracing.AttrCourseID, int(course.ID())))
	log.Info(log.CatRegistry, "Course added", "id", course.ID(), "code", course.Code(), "capacity", course.Capacity())
	s.events.Publish(pubsub.CourseAdded, Change{CourseID: course.ID(), Course: course.Name()})

	return newCourseView(course), nil
}

// FindOrCreateStudent returns the student with the given name, registering
// one when none matches. created reports whether a student was registered.
func (s *Service) FindOrCreateStudent(ctx context.Context, name string) (StudentView, bool) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"FindOrCreateStudent",
		attribute.String(tracing.AttrStudentName, name),
	)
	defer func() { tracing.End(span, nil) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, created := s.findOrCreate(name)
	span.SetAttributes(
		attribute.Int(tracing.AttrStudentID, int(st.ID())),
		attribute.Bool(tracing.AttrCreated, created),
	)
	return s.studentView(st), created
}

// findOrCreate must be called with s.mu held for writing.
func (s *Service) findOrCreate(name string) (*records.Student, bool) {
	st, created := s.students.FindOrCreate(name)
	if created {
		log.Info(log.CatRegistry, "Student registered", "id", st.ID(), "name", st.Name())
		s.events.Publish(pubsub.StudentRegistered, Change{StudentID: st.ID(), Student: st.Name()})
	}
	return st, created
}

// Enroll places an existing student in the course with the given name or code.
func (s *Service) Enroll(ctx context.Context, studentID records.StudentID, courseName string) (err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"Enroll",
		attribute.Int(tracing.AttrStudentID, int(studentID)),
		attribute.String(tracing.AttrCourseName, courseName),
	)
	defer func() { tracing.End(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.students.FindByID(studentID)
	if err != nil {
		return fmt.Errorf("enroll student %s: %w", studentID, err)
	}
	course, err := s.findCourse(courseName)
	if err != nil {
		return fmt.Errorf("enroll %s in %q: %w", st.Name(), courseName, err)
	}
	return s.enroll(ctx, st, course)
}

// EnrollByName finds or registers the student, then enrolls them. The course
// is resolved first, so an unknown course registers nobody. The returned view
// is populated whenever the student exists, even if enrollment was rejected.
func (s *Service) EnrollByName(ctx context.Context, studentName, courseName string) (view StudentView, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"EnrollByName",
		attribute.String(tracing.AttrStudentName, studentName),
		attribute.String(tracing.AttrCourseName, courseName),
	)
	defer func() { tracing.End(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	course, err := s.findCourse(courseName)
	if err != nil {
		return StudentView{}, fmt.Errorf("enroll %s in %q: %w", strings.TrimSpace(studentName), courseName, err)
	}

	st, _ := s.findOrCreate(studentName)
	err = s.enroll(ctx, st, course)
	return s.studentView(st), err
}

// enroll must be called with s.mu held for writing.
func (s *Service) enroll(ctx context.Context, st *records.Student, course *records.Course) error {
	if err := records.Enroll(course, st, s.policy); err != nil {
		log.Warn(log.CatEnroll, "Enrollment rejected",
			"student", st.ID(), "course", course.Code(), "enrolled", course.Enrolled(), "capacity", course.Capacity(), "error", err)
		return fmt.Errorf("enroll %s in %s: %w", st.Name(), course.Name(), err)
	}

	s.invalidate(ctx, st.ID())
	log.Info(log.CatEnroll, "Student enrolled", "student", st.ID(), "course", course.Code(), "seats_left", course.SeatsLeft())
	s.events.Publish(pubsub.StudentEnrolled, Change{
		StudentID: st.ID(),
		Student:   st.Name(),
		CourseID:  course.ID(),
		Course:    course.Name(),
	})
	return nil
}

// AssignGrade records a grade for a student in a course they are enrolled in.
// Rejections are checked in order: unknown student, unknown course, not
// enrolled, grade out of range.
func (s *Service) AssignGrade(ctx context.Context, studentID records.StudentID, courseName string, grade int) (err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"AssignGrade",
		attribute.Int(tracing.AttrStudentID, int(studentID)),
		attribute.String(tracing.AttrCourseName, courseName),
		attribute.Int(tracing.AttrGrade, grade),
	)
	defer func() { tracing.End(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.students.FindByID(studentID)
	if err != nil {
		return fmt.Errorf("assign grade to student %s: %w", studentID, err)
	}
	course, err := s.findCourse(courseName)
	if err != nil {
		return fmt.Errorf("assign grade to %s in %q: %w", st.Name(), courseName, err)
	}
	if !st.IsEnrolledIn(course.ID()) {
		log.Warn(log.CatGrade, "Grade rejected", "student", st.ID(), "course", course.Code(), "error", records.ErrNotEnrolled)
		return fmt.Errorf("assign grade to %s in %s: %w", st.Name(), course.Name(), records.ErrNotEnrolled)
	}
	if err := s.bounds.Check(grade); err != nil {
		log.Warn(log.CatGrade, "Grade rejected", "student", st.ID(), "course", course.Code(), "grade", grade, "error", err)
		return fmt.Errorf("assign grade to %s in %s: %w", st.Name(), course.Name(), err)
	}
	if err := records.SetGrade(course, st, grade); err != nil {
		return fmt.Errorf("assign grade to %s in %s: %w", st.Name(), course.Name(), err)
	}

	s.invalidate(ctx, st.ID())
	log.Info(log.CatGrade, "Grade assigned", "student", st.ID(), "course", course.Code(), "grade", grade)
	s.events.Publish(pubsub.GradeAssigned, Change{
		StudentID: st.ID(),
		Student:   st.Name(),
		CourseID:  course.ID(),
		Course:    course.Name(),
		Grade:     grade,
	})
	return nil
}

// Grade returns the student's current grade in a course.
func (s *Service) Grade(ctx context.Context, studentID records.StudentID, courseName string) (grade int, err error) {
	_, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"Grade",
		attribute.Int(tracing.AttrStudentID, int(studentID)),
		attribute.String(tracing.AttrCourseName, courseName),
	)
	defer func() { tracing.End(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.students.FindByID(studentID)
	if err != nil {
		return 0, fmt.Errorf("grade of student %s: %w", studentID, err)
	}
	course, err := s.findCourse(courseName)
	if err != nil {
		return 0, fmt.Errorf("grade of %s in %q: %w", st.Name(), courseName, err)
	}
	grade, err = course.Grade(st.ID())
	if err != nil {
		return 0, fmt.Errorf("grade of %s in %s: %w", st.Name(), course.Name(), err)
	}
	return grade, nil
}

// AverageGrade returns the mean of the student's grades, or 0 when there are none.
func (s *Service) AverageGrade(ctx context.Context, studentID records.StudentID) (avg float64, err error) {
	ctx, span := tracing.Start(ctx, s.tracer, tracing.SpanPrefixService+"AverageGrade",
		attribute.Int(tracing.AttrStudentID, int(studentID)),
	)
	defer func() { tracing.End(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	avg, err = s.averages.Get(ctx, studentID)
	if err != nil {
		return 0, fmt.Errorf("average of student %s: %w", studentID, err)
	}
	span.SetAttributes(attribute.Float64(tracing.AttrAverage, avg))
	return avg, nil
}

// computeAverage must be called with s.mu held.
func (s *Service) computeAverage(_ context.Context, id records.StudentID) (float64, error) {
	st, err := s.students.FindByID(id)
	if err != nil {
		return 0, err
	}
	if s.legacyAverage {
		return records.Average(st.GradeHistory()), nil
	}
	return records.Average(s.courses.CurrentGrades(st)), nil
}

// invalidate must be called with s.mu held for writing.
func (s *Service) invalidate(ctx context.Context, id records.StudentID) {
	s.averages.Invalidate(ctx, id)
	trace.SpanFromContext(ctx).AddEvent(tracing.EventCacheInvalidated)
	log.Debug(log.CatCache, "Average invalidated", "student", id)
}

// findCourse resolves a course by name, falling back to its code.
func (s *Service) findCourse(nameOrCode string) (*records.Course, error) {
	course, err := s.courses.FindByName(nameOrCode)
	if errors.Is(err, records.ErrCourseNotFound) {
		return s.courses.FindByCode(nameOrCode)
	}
	return course, err
}

// PublishRosterLoaded announces a completed roster load to subscribers.
func (s *Service) PublishRosterLoaded(source string, applied, rejected int) {
	s.events.Publish(pubsub.RosterLoaded, Change{Source: source, Applied: applied, Rejected: rejected})
}

package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/registrar/internal/domain/records"
)

// Span attribute keys.
const (
	AttrStudentID   = "student.id"
	AttrStudentName = "student.name"
	AttrCourseID    = "course.id"
	AttrCourseCode  = "course.code"
	AttrCourseName  = "course.name"
	AttrGrade       = "grade.value"
	AttrAverage     = "grade.average"
	AttrCreated     = "student.created"
	AttrRosterPath  = "roster.path"
	AttrApplied     = "roster.applied"
	AttrRejected    = "roster.rejected"
	AttrCacheHit    = "cache.hit"
	AttrErrorKind   = "error.kind"
)

// Span name prefixes.
const (
	SpanPrefixService = "enrollment."
	SpanPrefixRoster  = "roster."
)

// Event names.
const (
	EventCacheInvalidated = "cache.invalidated"
	EventEntryRejected    = "entry.rejected"
)

// errorKinds maps record sentinels to stable attribute values.
var errorKinds = []struct {
	err  error
	kind string
}{
	{records.ErrStudentNotFound, "student_not_found"},
	{records.ErrCourseNotFound, "course_not_found"},
	{records.ErrCourseFull, "course_full"},
	{records.ErrNotEnrolled, "not_enrolled"},
	{records.ErrAlreadyEnrolled, "already_enrolled"},
	{records.ErrDuplicateCourse, "duplicate_course"},
	{records.ErrInvalidCourse, "invalid_course"},
	{records.ErrNoGradeAssigned, "no_grade_assigned"},
	{records.ErrGradeOutOfRange, "grade_out_of_range"},
}

// ErrorKind classifies err by the record sentinel it wraps, or "internal".
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

// Start opens an internal span carrying attrs.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// End records the outcome of an operation and ends the span.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorKind, ErrorKind(err)))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

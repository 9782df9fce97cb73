package roster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/registrar/internal/application/enrollment"
	"github.com/zjrosen/registrar/internal/domain/records"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/tracing"
)

// Service is the part of enrollment.Service the loader drives.
type Service interface {
	AddCourse(ctx context.Context, code, name string, capacity int) (enrollment.CourseView, error)
	Course(nameOrCode string) (enrollment.CourseView, error)
	FindOrCreateStudent(ctx context.Context, name string) (enrollment.StudentView, bool)
	EnrollByName(ctx context.Context, studentName, courseName string) (enrollment.StudentView, error)
	AssignGrade(ctx context.Context, studentID records.StudentID, courseName string, grade int) error
	Grade(ctx context.Context, studentID records.StudentID, courseName string) (int, error)
	PublishRosterLoaded(source string, applied, rejected int)
}

// Rejection is one roster entry the service refused.
type Rejection struct {
	Entry string
	Err   error
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s: %v", r.Entry, r.Err)
}

// Report summarizes one load. Entries already reflected in the service
// (same course, existing enrollment, same grade) count as Unchanged, so
// loading a file twice reports everything unchanged the second time.
type Report struct {
	Source     string
	Applied    int
	Unchanged  int
	Rejections []Rejection
}

// Rejected returns the number of rejected entries.
func (r Report) Rejected() int {
	return len(r.Rejections)
}

// Loader applies roster documents to a Service.
type Loader struct {
	svc    Service
	tracer trace.Tracer
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderTracer sets the tracer used for load spans.
func WithLoaderTracer(tracer trace.Tracer) LoaderOption {
	return func(l *Loader) {
		if tracer != nil {
			l.tracer = tracer
		}
	}
}

// NewLoader creates a loader for svc.
func NewLoader(svc Service, opts ...LoaderOption) *Loader {
	l := &Loader{
		svc:    svc,
		tracer: noop.NewTracerProvider().Tracer("roster"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads the roster at path and applies it.
func (l *Loader) LoadFile(ctx context.Context, path string) (Report, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Report{}, fmt.Errorf("resolving roster path: %w", err)
	}
	doc, err := Read(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
	if err != nil {
		log.ErrorErr(log.CatRoster, "Failed to read roster", err, "path", path)
		return Report{}, err
	}
	return l.Apply(ctx, path, doc), nil
}

// Apply creates courses first, then registers students and applies their
// enrollments and grades in document order. A rejected entry is recorded and
// skipped; a rejected enrollment skips its grade.
func (l *Loader) Apply(ctx context.Context, source string, doc Document) (report Report) {
	ctx, span := tracing.Start(ctx, l.tracer, tracing.SpanPrefixRoster+"Apply",
		attribute.String(tracing.AttrRosterPath, source),
	)
	defer func() {
		span.SetAttributes(
			attribute.Int(tracing.AttrApplied, report.Applied),
			attribute.Int(tracing.AttrRejected, report.Rejected()),
		)
		tracing.End(span, nil)
	}()

	report.Source = source
	reject := func(entry string, err error) {
		report.Rejections = append(report.Rejections, Rejection{Entry: entry, Err: err})
		span.AddEvent(tracing.EventEntryRejected, trace.WithAttributes(
			attribute.String(tracing.AttrErrorKind, tracing.ErrorKind(err)),
		))
		log.Warn(log.CatRoster, "Roster entry rejected", "source", source, "entry", entry, "error", err)
	}

	for _, c := range doc.Courses {
		entry := fmt.Sprintf("course %s", c.Code)
		if strings.TrimSpace(c.Code) == "" || strings.TrimSpace(c.Name) == "" {
			reject(entry, errors.New("course code and name are required"))
			continue
		}
		_, err := l.svc.AddCourse(ctx, c.Code, c.Name, c.Capacity)
		switch {
		case err == nil:
			report.Applied++
		case errors.Is(err, records.ErrDuplicateCourse) && l.sameCourse(c):
			report.Unchanged++
		default:
			reject(entry, err)
		}
	}

	for _, s := range doc.Students {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			reject("student", errors.New("student name is required"))
			continue
		}

		if len(s.Enrollments) == 0 {
			if _, created := l.svc.FindOrCreateStudent(ctx, name); created {
				report.Applied++
			} else {
				report.Unchanged++
			}
			continue
		}

		for _, e := range s.Enrollments {
			entry := fmt.Sprintf("%s in %s", name, e.Course)
			view, err := l.svc.EnrollByName(ctx, name, e.Course)
			switch {
			case err == nil:
				report.Applied++
			case errors.Is(err, records.ErrAlreadyEnrolled):
				report.Unchanged++
			default:
				reject(entry, err)
				continue
			}

			if e.Grade == nil {
				continue
			}
			entry = fmt.Sprintf("grade %d for %s", *e.Grade, entry)
			if current, err := l.svc.Grade(ctx, view.ID, e.Course); err == nil && current == *e.Grade {
				report.Unchanged++
				continue
			}
			if err := l.svc.AssignGrade(ctx, view.ID, e.Course, *e.Grade); err != nil {
				reject(entry, err)
				continue
			}
			report.Applied++
		}
	}

	log.Info(log.CatRoster, "Roster applied",
		"source", source, "applied", report.Applied, "unchanged", report.Unchanged, "rejected", report.Rejected())
	l.svc.PublishRosterLoaded(source, report.Applied, report.Rejected())
	return report
}

// sameCourse reports whether a course with c's code already exists with the
// same name and capacity.
func (l *Loader) sameCourse(c CourseEntry) bool {
	existing, err := l.svc.Course(c.Code)
	if err != nil {
		return false
	}
	return strings.EqualFold(existing.Code, strings.TrimSpace(c.Code)) &&
		strings.EqualFold(existing.Name, strings.TrimSpace(c.Name)) &&
		existing.Capacity == c.Capacity
}

package enrollment

import (
	"context"
	"fmt"

	"github.com/zjrosen/registrar/internal/domain/records"
)

// Student returns a snapshot of one student.
func (s *Service) Student(id records.StudentID) (StudentView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.students.FindByID(id)
	if err != nil {
		return StudentView{}, fmt.Errorf("student %s: %w", id, err)
	}
	return s.studentView(st), nil
}

// StudentByName returns a snapshot of the student with the given name.
func (s *Service) StudentByName(name string) (StudentView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.students.FindByName(name)
	if err != nil {
		return StudentView{}, fmt.Errorf("student %q: %w", name, err)
	}
	return s.studentView(st), nil
}

// Students returns every student in registration order.
func (s *Service) Students() []StudentView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.students.All()
	views := make([]StudentView, 0, len(all))
	for _, st := range all {
		views = append(views, s.studentView(st))
	}
	return views
}

// Course returns a snapshot of the course with the given name or code.
func (s *Service) Course(nameOrCode string) (CourseView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, err := s.findCourse(nameOrCode)
	if err != nil {
		return CourseView{}, fmt.Errorf("course %q: %w", nameOrCode, err)
	}
	return newCourseView(course), nil
}

// Courses returns every course in creation order.
func (s *Service) Courses() []CourseView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.courses.All()
	views := make([]CourseView, 0, len(all))
	for _, c := range all {
		views = append(views, newCourseView(c))
	}
	return views
}

// Roster lists the students enrolled in a course in enrollment order.
func (s *Service) Roster(courseName string) ([]RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, err := s.findCourse(courseName)
	if err != nil {
		return nil, fmt.Errorf("roster of %q: %w", courseName, err)
	}

	ids := course.Roster()
	entries := make([]RosterEntry, 0, len(ids))
	for _, id := range ids {
		st, err := s.students.FindByID(id)
		if err != nil {
			continue
		}
		grade, gradeErr := course.Grade(id)
		entries = append(entries, RosterEntry{
			StudentID: id,
			Name:      st.Name(),
			Grade:     grade,
			Graded:    gradeErr == nil,
		})
	}
	return entries, nil
}

// Transcript lists each course the student is enrolled in with its current
// grade, plus the student's average.
func (s *Service) Transcript(ctx context.Context, id records.StudentID) (Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.students.FindByID(id)
	if err != nil {
		return Transcript{}, fmt.Errorf("transcript of student %s: %w", id, err)
	}

	view := s.studentView(st)
	rows := make([]TranscriptRow, 0, len(view.Courses))
	seen := make(map[records.CourseID]bool, len(view.Courses))
	for _, ref := range view.Courses {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true

		course, err := s.courses.FindByID(ref.ID)
		if err != nil {
			continue
		}
		grade, gradeErr := course.Grade(id)
		rows = append(rows, TranscriptRow{Course: ref, Grade: grade, Graded: gradeErr == nil})
	}

	avg, err := s.averages.Get(ctx, id)
	if err != nil {
		return Transcript{}, fmt.Errorf("transcript of student %s: %w", id, err)
	}

	return Transcript{Student: view, Rows: rows, Average: avg}, nil
}

// Counts returns the number of registered students and courses.
func (s *Service) Counts() (students, courses int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.students.Len(), s.courses.Len()
}

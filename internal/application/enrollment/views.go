package enrollment

import "github.com/zjrosen/registrar/internal/domain/records"

// StudentView is a read-only copy of a student.
type StudentView struct {
	ID           records.StudentID
	Name         string
	Courses      []CourseRef
	GradeHistory []int
}

// CourseRef identifies a course inside another view.
type CourseRef struct {
	ID   records.CourseID
	Code string
	Name string
}

// CourseView is a read-only copy of a course.
type CourseView struct {
	ID        records.CourseID
	Code      string
	Name      string
	Capacity  int
	Enrolled  int
	SeatsLeft int
}

// RosterEntry is one student on a course roster.
type RosterEntry struct {
	StudentID records.StudentID
	Name      string
	Grade     int
	Graded    bool
}

// TranscriptRow is one course on a transcript.
type TranscriptRow struct {
	Course CourseRef
	Grade  int
	Graded bool
}

// Transcript lists a student's courses with their current grades.
type Transcript struct {
	Student StudentView
	Rows    []TranscriptRow
	Average float64
}

func courseRef(c *records.Course) CourseRef {
	return CourseRef{ID: c.ID(), Code: c.Code(), Name: c.Name()}
}

func newCourseView(c *records.Course) CourseView {
	return CourseView{
		ID:        c.ID(),
		Code:      c.Code(),
		Name:      c.Name(),
		Capacity:  c.Capacity(),
		Enrolled:  c.Enrolled(),
		SeatsLeft: c.SeatsLeft(),
	}
}

// studentView must be called with s.mu held.
func (s *Service) studentView(st *records.Student) StudentView {
	ids := st.Courses()
	refs := make([]CourseRef, 0, len(ids))
	for _, id := range ids {
		if c, err := s.courses.FindByID(id); err == nil {
			refs = append(refs, courseRef(c))
		}
	}
	return StudentView{
		ID:           st.ID(),
		Name:         st.Name(),
		Courses:      refs,
		GradeHistory: st.GradeHistory(),
	}
}

package presentation

import (
	"github.com/zjrosen/registrar/internal/application/enrollment"
	"github.com/zjrosen/registrar/internal/application/roster"
)

// CourseDTO represents a course for presentation
type CourseDTO struct {
	ID        int    `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Enrolled  int    `json:"enrolled"`
	SeatsLeft int    `json:"seats_left"`
}

// StudentDTO represents a student with their course codes
type StudentDTO struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Courses      []string `json:"courses"`
	GradeHistory []int    `json:"grade_history"`
	Average      float64  `json:"average"`
}

// TranscriptDTO represents one student's transcript
type TranscriptDTO struct {
	StudentID int                `json:"student_id"`
	Name      string             `json:"name"`
	Courses   []TranscriptRowDTO `json:"courses"`
	Average   float64            `json:"average"`
}

// TranscriptRowDTO is one course on a transcript. Grade is omitted when the
// course has not been graded.
type TranscriptRowDTO struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Grade *int   `json:"grade,omitempty"`
}

// ReportDTO is the full registry dump printed by the report command
type ReportDTO struct {
	Source     string       `json:"source,omitempty"`
	Applied    int          `json:"applied"`
	Unchanged  int          `json:"unchanged"`
	Rejections []string     `json:"rejections"`
	Courses    []CourseDTO  `json:"courses"`
	Students   []StudentDTO `json:"students"`
}

// FromCourseView converts a course snapshot to a DTO
func FromCourseView(c enrollment.CourseView) CourseDTO {
	return CourseDTO{
		ID:        int(c.ID),
		Code:      c.Code,
		Name:      c.Name,
		Capacity:  c.Capacity,
		Enrolled:  c.Enrolled,
		SeatsLeft: c.SeatsLeft,
	}
}

// FromStudentView converts a student snapshot and its average to a DTO
func FromStudentView(s enrollment.StudentView, average float64) StudentDTO {
	codes := make([]string, 0, len(s.Courses))
	for _, c := range s.Courses {
		codes = append(codes, c.Code)
	}
	history := s.GradeHistory
	if history == nil {
		history = []int{}
	}
	return StudentDTO{
		ID:           int(s.ID),
		Name:         s.Name,
		Courses:      codes,
		GradeHistory: history,
		Average:      average,
	}
}

// FromTranscript converts a transcript to a DTO
func FromTranscript(t enrollment.Transcript) TranscriptDTO {
	rows := make([]TranscriptRowDTO, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := TranscriptRowDTO{Code: r.Course.Code, Name: r.Course.Name}
		if r.Graded {
			grade := r.Grade
			row.Grade = &grade
		}
		rows = append(rows, row)
	}
	return TranscriptDTO{
		StudentID: int(t.Student.ID),
		Name:      t.Student.Name,
		Courses:   rows,
		Average:   t.Average,
	}
}

// FromLoadReport fills the load summary part of a report
func FromLoadReport(r roster.Report) ReportDTO {
	rejections := make([]string, 0, len(r.Rejections))
	for _, rej := range r.Rejections {
		rejections = append(rejections, rej.String())
	}
	return ReportDTO{
		Source:     r.Source,
		Applied:    r.Applied,
		Unchanged:  r.Unchanged,
		Rejections: rejections,
		Courses:    []CourseDTO{},
		Students:   []StudentDTO{},
	}
}

package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/zjrosen/registrar/internal/application/enrollment"
	"github.com/zjrosen/registrar/internal/domain/records"
	"github.com/zjrosen/registrar/internal/pubsub"
)

// Service is the part of enrollment.Service the shell drives.
type Service interface {
	AddCourse(ctx context.Context, code, name string, capacity int) (enrollment.CourseView, error)
	EnrollByName(ctx context.Context, studentName, courseName string) (enrollment.StudentView, error)
	AssignGrade(ctx context.Context, studentID records.StudentID, courseName string, grade int) error
	Grade(ctx context.Context, studentID records.StudentID, courseName string) (int, error)
	AverageGrade(ctx context.Context, studentID records.StudentID) (float64, error)
	Student(id records.StudentID) (enrollment.StudentView, error)
	Transcript(ctx context.Context, studentID records.StudentID) (enrollment.Transcript, error)
	Courses() []enrollment.CourseView
	Events() *pubsub.Broker[enrollment.Change]
}

// Action is one menu entry.
type Action int

const (
	ActionAddCourse Action = iota
	ActionEnroll
	ActionAssignGrade
	ActionAverage
	ActionViewGrade
	ActionTranscript
	ActionCourses
	ActionExit
)

type menuItem struct {
	action Action
	label  string
}

var menu = []menuItem{
	{ActionAddCourse, "Add Course"},
	{ActionEnroll, "Enroll Student"},
	{ActionAssignGrade, "Assign Grade"},
	{ActionAverage, "Calculate Average Grade"},
	{ActionViewGrade, "View Grade"},
	{ActionTranscript, "Transcript"},
	{ActionCourses, "List Courses"},
	{ActionExit, "Exit"},
}

func (a Action) String() string {
	for _, item := range menu {
		if item.action == a {
			return item.label
		}
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// field is one prompt of an action's form.
type field struct {
	key         string
	prompt      string
	placeholder string
	parse       func(string) (any, error)
}

func textField(key, prompt, placeholder string) field {
	return field{key: key, prompt: prompt, placeholder: placeholder, parse: func(s string) (any, error) {
		return ParseText(s)
	}}
}

func studentIDField() field {
	return field{key: "student", prompt: "Enter student ID", placeholder: "1", parse: func(s string) (any, error) {
		return ParseStudentID(s)
	}}
}

func fieldsFor(a Action) []field {
	switch a {
	case ActionAddCourse:
		return []field{
			textField("code", "Enter course code", "CS101"),
			textField("name", "Enter course name", "Intro to CS"),
			{key: "capacity", prompt: "Enter maximum capacity", placeholder: "30", parse: func(s string) (any, error) {
				return ParseCapacity(s)
			}},
		}
	case ActionEnroll:
		return []field{
			textField("student", "Enter student name", "Ada Lovelace"),
			textField("course", "Enter course name to enroll", "Intro to CS"),
		}
	case ActionAssignGrade:
		return []field{
			studentIDField(),
			textField("course", "Enter course name", "Intro to CS"),
			{key: "grade", prompt: "Enter grade", placeholder: "90", parse: func(s string) (any, error) {
				return ParseGrade(s)
			}},
		}
	case ActionViewGrade:
		return []field{
			studentIDField(),
			textField("course", "Enter course name", "Intro to CS"),
		}
	case ActionAverage, ActionTranscript:
		return []field{studentIDField()}
	default:
		return nil
	}
}

// outcome is what an executed action leaves on screen.
type outcome struct {
	status string
	err    error
	body   string
}

type values map[string]any

func (v values) text(key string) string {
	s, _ := v[key].(string)
	return s
}

func (v values) number(key string) int {
	n, _ := v[key].(int)
	return n
}

func (v values) student(key string) records.StudentID {
	id, _ := v[key].(records.StudentID)
	return id
}

func run(ctx context.Context, svc Service, a Action, v values, width int) outcome {
	switch a {
	case ActionAddCourse:
		course, err := svc.AddCourse(ctx, v.text("code"), v.text("name"), v.number("capacity"))
		if err != nil {
			return outcome{err: err}
		}
		return outcome{status: fmt.Sprintf("Course %s added successfully.", course.Name)}

	case ActionEnroll:
		st, err := svc.EnrollByName(ctx, v.text("student"), v.text("course"))
		if err != nil {
			return outcome{err: err}
		}
		return outcome{status: fmt.Sprintf("Student Enrolled! ID#: %d (%s)", st.ID, st.Name)}

	case ActionAssignGrade:
		grade := v.number("grade")
		if err := svc.AssignGrade(ctx, v.student("student"), v.text("course"), grade); err != nil {
			return outcome{err: err}
		}
		return outcome{status: fmt.Sprintf("Grade %d assigned to student #%d for course %s", grade, v.student("student"), v.text("course"))}

	case ActionViewGrade:
		grade, err := svc.Grade(ctx, v.student("student"), v.text("course"))
		if err != nil {
			return outcome{err: err}
		}
		return outcome{status: fmt.Sprintf("Grade for student #%d in %s: %d", v.student("student"), v.text("course"), grade)}

	case ActionAverage:
		st, err := svc.Student(v.student("student"))
		if err != nil {
			return outcome{err: err}
		}
		avg, err := svc.AverageGrade(ctx, st.ID)
		if err != nil {
			return outcome{err: err}
		}
		return outcome{status: fmt.Sprintf("Overall average grade for student %s: %.2f", st.Name, avg)}

	case ActionTranscript:
		tr, err := svc.Transcript(ctx, v.student("student"))
		if err != nil {
			return outcome{err: err}
		}
		return outcome{
			status: fmt.Sprintf("Transcript for %s (#%d)", tr.Student.Name, tr.Student.ID),
			body:   renderTranscript(tr, width),
		}

	case ActionCourses:
		courses := svc.Courses()
		return outcome{
			status: fmt.Sprintf("%d course(s)", len(courses)),
			body:   renderCourses(courses, width),
		}
	}
	return outcome{}
}

// rejection turns a service error into the headline shown to the user.
func rejection(err error) string {
	switch {
	case errors.Is(err, ErrTooManyAttempts):
		return "Too many invalid attempts, back to the menu."
	case errors.Is(err, ErrUnknownChoice):
		return fmt.Sprintf("Invalid choice. Please enter a number between 1 and %d.", len(menu))
	case errors.Is(err, ErrNotANumber):
		return "Invalid input. Please enter a valid number."
	case errors.Is(err, records.ErrStudentNotFound):
		return "Student not found."
	case errors.Is(err, records.ErrCourseNotFound):
		return "Course not found."
	case errors.Is(err, records.ErrCourseFull):
		return "Course is already full."
	case errors.Is(err, records.ErrAlreadyEnrolled):
		return "Student is already enrolled in that course."
	case errors.Is(err, records.ErrNotEnrolled):
		return "Student is not enrolled in that course."
	case errors.Is(err, records.ErrDuplicateCourse):
		return "Course already exists."
	case errors.Is(err, records.ErrInvalidCourse):
		return "Course capacity cannot be negative."
	case errors.Is(err, records.ErrNoGradeAssigned):
		return "No grade assigned yet."
	case errors.Is(err, records.ErrGradeOutOfRange):
		return "Grade is out of range."
	default:
		return "Request failed."
	}
}

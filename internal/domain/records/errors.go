package records

import "errors"

// Rejections returned by the registries and the enrollment functions.
// All of them are recoverable: the operation that returns one leaves state unchanged.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseFull      = errors.New("course is full")
	ErrNotEnrolled     = errors.New("student is not enrolled in course")
	ErrAlreadyEnrolled = errors.New("student is already enrolled in course")
	ErrDuplicateCourse = errors.New("course already exists")
	ErrInvalidCourse   = errors.New("invalid course")
	ErrNoGradeAssigned = errors.New("no grade assigned")
	ErrGradeOutOfRange = errors.New("grade out of range")
	ErrNilEntity       = errors.New("student and course are required")
)

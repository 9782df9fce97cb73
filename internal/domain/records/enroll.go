package records

// Policy holds the enrollment rules that vary by configuration.
type Policy struct {
	// AllowReenroll lets a student be enrolled in the same course more than once.
	// Each extra enrollment takes another seat.
	AllowReenroll bool
}

// Enroll adds the student to the course roster and the course to the student's
// course list. Both collections change together or not at all.
func Enroll(c *Course, s *Student, p Policy) error {
	if c == nil || s == nil {
		return ErrNilEntity
	}
	if !p.AllowReenroll && c.HasStudent(s.id) {
		return ErrAlreadyEnrolled
	}
	if c.IsFull() {
		return ErrCourseFull
	}

	c.roster = append(c.roster, s.id)
	s.courses = append(s.courses, c.id)
	return nil
}

// SetGrade records a grade for an enrolled student. The course keeps one grade per
// student (a later grade overwrites), while the student's history keeps every grade.
func SetGrade(c *Course, s *Student, grade int) error {
	if c == nil || s == nil {
		return ErrNilEntity
	}
	if !c.HasStudent(s.id) {
		return ErrNotEnrolled
	}

	c.grades[s.id] = grade
	s.history = append(s.history, grade)
	return nil
}

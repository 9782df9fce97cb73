package testutil

// WithStandardRoster adds three courses and three students:
//
//	Bob   CS101 90, MA201 70
//	Carl  CS101 80
//	Dana  PH110 (ungraded)
//
// CS101 has one seat left, PH110 is full.
func (b *Builder) WithStandardRoster() *Builder {
	return b.
		WithCourse("CS101", "Intro to CS", 3).
		WithCourse("MA201", "Linear Algebra", 10).
		WithCourse("PH110", "Physics", 1).
		WithEnrollment("Bob", "Intro to CS", 90).
		WithEnrollment("Bob", "Linear Algebra", 70).
		WithEnrollment("Carl", "Intro to CS", 80).
		WithEnrollment("Dana", "Physics")
}

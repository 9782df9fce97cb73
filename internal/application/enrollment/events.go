package enrollment

import (
	"fmt"

	"github.com/zjrosen/registrar/internal/domain/records"
	"github.com/zjrosen/registrar/internal/pubsub"
)

// Change is the payload of every event the Service publishes. Only the
// fields relevant to the event type are set.
type Change struct {
	StudentID records.StudentID
	Student   string
	CourseID  records.CourseID
	Course    string
	Grade     int

	// Roster loads
	Source   string
	Applied  int
	Rejected int
}

// Describe renders an event as a single human readable line.
func Describe(evt pubsub.Event[Change]) string {
	c := evt.Payload
	switch evt.Type {
	case pubsub.CourseAdded:
		return fmt.Sprintf("course %s added", c.Course)
	case pubsub.StudentRegistered:
		return fmt.Sprintf("student #%d %s registered", c.StudentID, c.Student)
	case pubsub.StudentEnrolled:
		return fmt.Sprintf("%s enrolled in %s", c.Student, c.Course)
	case pubsub.GradeAssigned:
		return fmt.Sprintf("%s graded %d in %s", c.Student, c.Grade, c.Course)
	case pubsub.RosterLoaded:
		return fmt.Sprintf("roster %s loaded: %d applied, %d rejected", c.Source, c.Applied, c.Rejected)
	default:
		return string(evt.Type)
	}
}

// Package records implements the domain layer for the academic records manager.
//
// This package follows the same layering rules as the rest of the domain code:
//   - Contains only pure Go code with standard library imports
//   - Defines the entity types (Student, Course) and the registries that own them
//   - Implements the enrollment and grading invariants that span both entities
//   - Has no knowledge of locking, logging, tracing or presentation concerns
//
// # Ownership
//
// StudentRegistry and CourseRegistry are the sole owners of entity lifetime. Entities
// are never deleted. Students and courses refer to each other by id (StudentID,
// CourseID), never by pointer, so the relation between them carries no ownership.
//
// # Pairing Invariant
//
// A student appears in a course roster iff the course appears in the student's
// enrolled course list. Enroll is the only function that writes either collection
// and it writes both or neither.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. The application layer
// (internal/application/enrollment) wraps both registries in a single lock.
package records

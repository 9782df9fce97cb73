// Package enrollment implements the application layer over the records domain.
//
// Service is the only entry point the shell, the roster loader and the CLI
// commands use. It owns one StudentRegistry and one CourseRegistry and guards
// both with a single RWMutex, so an enrollment or grade change is observed
// either completely or not at all: a reader never sees a student on a course
// roster without the course on the student's list.
//
// # Snapshots
//
// Nothing returned by Service aliases a live entity. Read methods return
// StudentView, CourseView, RosterEntry and Transcript values built while the
// read lock is held.
//
// # Events
//
// Every successful mutation is published on a pubsub.Broker[Change] after the
// state change and before the lock is released, so subscribers observe events
// in the order the mutations happened.
//
// # Averages
//
// AverageGrade reads through a go-cache backed cache keyed by student id.
// Enrollment and grade changes invalidate the affected student while the
// write lock is held.
package enrollment

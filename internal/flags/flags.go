// Package flags provides feature flag support for behavior that differs from the
// default record-keeping rules. Flags are read-only after initialization and unknown
// flags are disabled.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/registrar/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagLegacyGradeHistory averages every grade ever assigned to a student, including
	// grades later overwritten in the same course. When disabled, the average uses the
	// current grade of each course.
	FlagLegacyGradeHistory = "legacy-grade-history"

	// FlagAllowReenroll lets a student be enrolled in the same course more than once.
	FlagAllowReenroll = "allow-reenroll"
)

// Known lists every flag the application reads.
func Known() []string {
	return []string{FlagLegacyGradeHistory, FlagAllowReenroll}
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map.
// If flags is nil, an empty registry is created (all flags disabled).
func New(flags map[string]bool) *Registry {
	if flags == nil {
		flags = make(map[string]bool)
	}
	r := &Registry{flags: maps.Clone(flags)}
	for name := range flags {
		if !slices.Contains(Known(), name) {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
	}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Returns false for unknown flags and on a nil registry.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of all flags (for debugging/logging).
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}

package records

import (
	"fmt"
	"math"
	"strconv"
)

// GradeBounds is the inclusive range of accepted scores.
type GradeBounds struct {
	Min int
	Max int
}

// DefaultGradeBounds accepts every score.
func DefaultGradeBounds() GradeBounds {
	return GradeBounds{Min: math.MinInt, Max: math.MaxInt}
}

// Bounded reports whether some score would be rejected.
func (b GradeBounds) Bounded() bool {
	return b.Min != math.MinInt || b.Max != math.MaxInt
}

// Check returns ErrGradeOutOfRange if grade falls outside the bounds.
func (b GradeBounds) Check(grade int) error {
	if grade < b.Min || grade > b.Max {
		return fmt.Errorf("%w: %d not in %s", ErrGradeOutOfRange, grade, b)
	}
	return nil
}

// String renders the range, with open sides shown as *.
func (b GradeBounds) String() string {
	lo, hi := "*", "*"
	if b.Min != math.MinInt {
		lo = strconv.Itoa(b.Min)
	}
	if b.Max != math.MaxInt {
		hi = strconv.Itoa(b.Max)
	}
	return "[" + lo + ", " + hi + "]"
}

// Average returns the arithmetic mean of grades, or 0 for an empty list.
func Average(grades []int) float64 {
	if len(grades) == 0 {
		return 0.0
	}

	sum := 0
	for _, g := range grades {
		sum += g
	}
	return float64(sum) / float64(len(grades))
}

package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/zjrosen/registrar/internal/domain/records"
)

// MaxTextLength caps names and codes, counted in user-perceived characters.
const MaxTextLength = 64

// Parse errors. They never reach the enrollment service.
var (
	ErrEmptyInput    = errors.New("input is required")
	ErrTooLong       = errors.New("input is too long")
	ErrNotANumber    = errors.New("not a whole number")
	ErrNegative      = errors.New("must not be negative")
	ErrNotPositive   = errors.New("must be greater than zero")
	ErrUnknownChoice = errors.New("unknown menu choice")

	// ErrTooManyAttempts ends a prompt after Config.MaxAttempts bad inputs.
	ErrTooManyAttempts = errors.New("too many invalid attempts")
)

// ParseText trims s and rejects blank or overlong input.
func ParseText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyInput
	}
	if n := uniseg.GraphemeClusterCount(s); n > MaxTextLength {
		return "", fmt.Errorf("%w: %d characters, limit %d", ErrTooLong, n, MaxTextLength)
	}
	return s, nil
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyInput
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return n, nil
}

// ParseCapacity parses a course capacity. Zero is allowed.
func ParseCapacity(s string) (int, error) {
	n, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("capacity %w", ErrNegative)
	}
	return n, nil
}

// ParseGrade parses a numeric grade. Range checks belong to the service.
func ParseGrade(s string) (int, error) {
	return parseInt(s)
}

// ParseStudentID parses a student id, accepting an optional leading '#'.
func ParseStudentID(s string) (records.StudentID, error) {
	n, err := parseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("student id %w", ErrNotPositive)
	}
	return records.StudentID(n), nil
}

// ParseMenuChoice maps a 1-based menu number to its action.
func ParseMenuChoice(s string) (Action, error) {
	n, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > len(menu) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownChoice, n)
	}
	return menu[n-1].action, nil
}

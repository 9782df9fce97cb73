// Package roster imports courses, students, enrollments and grades from
// YAML or XLSX files and applies them through the enrollment service.
//
// Files are import-only: the service state is never written back.
package roster

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Document is a parsed roster, independent of file format.
type Document struct {
	Courses  []CourseEntry  `yaml:"courses"`
	Students []StudentEntry `yaml:"students"`
}

// CourseEntry describes one course to create.
type CourseEntry struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
}

// StudentEntry describes one student and their enrollments.
type StudentEntry struct {
	Name        string            `yaml:"name"`
	Enrollments []EnrollmentEntry `yaml:"enrollments"`
}

// EnrollmentEntry names a course by name or code, with an optional grade.
type EnrollmentEntry struct {
	Course string `yaml:"course"`
	Grade  *int   `yaml:"grade"`
}

// Format identifies a roster file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the format from the file extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported roster format %q (want .yaml, .yml or .xlsx)", path.Ext(name))
	}
}

// Read loads and parses name from fsys.
func Read(fsys fs.FS, name string) (Document, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return Document{}, err
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("reading roster: %w", err)
	}

	switch format {
	case FormatXLSX:
		return ParseXLSX(bytes.NewReader(data))
	default:
		return ParseYAML(data)
	}
}

package roster

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zjrosen/registrar/internal/log"
)

// Sheet names looked up case-insensitively in XLSX rosters.
const (
	SheetCourses     = "courses"
	SheetEnrollments = "enrollments"
)

// ParseXLSX reads a workbook with a "courses" sheet (code | name | capacity)
// and an "enrollments" sheet (student | course | grade). The first row of each
// sheet is a header. Blank rows are skipped; a blank grade means ungraded and
// a blank course registers the student only. Either sheet may be absent.
func ParseXLSX(r io.Reader) (Document, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Document{}, fmt.Errorf("opening roster workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.ErrorErr(log.CatRoster, "Failed to close workbook", err)
		}
	}()

	var doc Document

	if sheet, ok := findSheet(f, SheetCourses); ok {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Document{}, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		for _, row := range dataRows(rows) {
			capacity, err := strconv.Atoi(cell(row, 2))
			if err != nil {
				return Document{}, fmt.Errorf("sheet %s row %d: capacity %q is not a number", sheet, row.num, cell(row, 2))
			}
			doc.Courses = append(doc.Courses, CourseEntry{
				Code:     cell(row, 0),
				Name:     cell(row, 1),
				Capacity: capacity,
			})
		}
	}

	if sheet, ok := findSheet(f, SheetEnrollments); ok {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return Document{}, fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		index := make(map[string]int)
		for _, row := range dataRows(rows) {
			name := cell(row, 0)
			if name == "" {
				return Document{}, fmt.Errorf("sheet %s row %d: student is required", sheet, row.num)
			}

			key := strings.ToLower(name)
			pos, seen := index[key]
			if !seen {
				pos = len(doc.Students)
				index[key] = pos
				doc.Students = append(doc.Students, StudentEntry{Name: name})
			}

			course := cell(row, 1)
			if course == "" {
				continue
			}
			entry := EnrollmentEntry{Course: course}
			if g := cell(row, 2); g != "" {
				grade, err := strconv.Atoi(g)
				if err != nil {
					return Document{}, fmt.Errorf("sheet %s row %d: grade %q is not a number", sheet, row.num, g)
				}
				entry.Grade = &grade
			}
			doc.Students[pos].Enrollments = append(doc.Students[pos].Enrollments, entry)
		}
	}

	return doc, nil
}

func findSheet(f *excelize.File, want string) (string, bool) {
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return name, true
		}
	}
	return "", false
}

type sheetRow struct {
	num   int // 1-based row number in the sheet
	cells []string
}

// dataRows drops the header row and rows whose cells are all blank.
func dataRows(rows [][]string) []sheetRow {
	out := make([]sheetRow, 0, len(rows))
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		out = append(out, sheetRow{num: i + 1, cells: row})
	}
	return out
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(row sheetRow, i int) string {
	if i >= len(row.cells) {
		return ""
	}
	return strings.TrimSpace(row.cells[i])
}

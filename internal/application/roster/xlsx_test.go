package roster

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an XLSX file with the given sheets. Each sheet's first row
// is its header.
func workbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	data := workbook(t, map[string][][]any{
		"Courses": {
			{"code", "name", "capacity"},
			{"CS101", "Intro", 1},
			{"", "", ""},
			{"MA201", "Algebra", "10"},
		},
		"enrollments": {
			{"student", "course", "grade"},
			{"Bob", "CS101", 95},
			{"Carl", "Intro", ""},
			{"bob", "Algebra", ""},
			{"Dana", "", ""},
		},
	})

	doc, err := ParseXLSX(bytes.NewReader(data))
	require.NoError(t, err)

	require.Equal(t, []CourseEntry{
		{Code: "CS101", Name: "Intro", Capacity: 1},
		{Code: "MA201", Name: "Algebra", Capacity: 10},
	}, doc.Courses)

	require.Len(t, doc.Students, 3)
	bob := doc.Students[0]
	require.Equal(t, "Bob", bob.Name)
	require.Len(t, bob.Enrollments, 2)
	require.Equal(t, 95, *bob.Enrollments[0].Grade)
	require.Equal(t, "Algebra", bob.Enrollments[1].Course)
	require.Nil(t, bob.Enrollments[1].Grade)

	require.Equal(t, "Carl", doc.Students[1].Name)
	require.Equal(t, "Dana", doc.Students[2].Name)
	require.Empty(t, doc.Students[2].Enrollments)
}

func TestParseXLSX_Errors(t *testing.T) {
	tests := []struct {
		name        string
		sheets      map[string][][]any
		errContains string
	}{
		{
			name: "bad capacity",
			sheets: map[string][][]any{
				"courses": {{"code", "name", "capacity"}, {"CS101", "Intro", "many"}},
			},
			errContains: `sheet courses row 2: capacity "many" is not a number`,
		},
		{
			name: "bad grade",
			sheets: map[string][][]any{
				"enrollments": {{"student", "course", "grade"}, {"Bob", "CS101", "A+"}},
			},
			errContains: `sheet enrollments row 2: grade "A+" is not a number`,
		},
		{
			name: "missing student",
			sheets: map[string][][]any{
				"enrollments": {{"student", "course", "grade"}, {"", "CS101", 90}},
			},
			errContains: "student is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXLSX(bytes.NewReader(workbook(t, tt.sheets)))
			require.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	_, err := ParseXLSX(bytes.NewReader([]byte("plain text")))
	require.ErrorContains(t, err, "opening roster workbook")
}

func TestRead_XLSX(t *testing.T) {
	fsys := fstest.MapFS{
		"roster.xlsx": &fstest.MapFile{Data: workbook(t, map[string][][]any{
			"courses": {{"code", "name", "capacity"}, {"CS101", "Intro", 2}},
		})},
	}

	doc, err := Read(fsys, "roster.xlsx")
	require.NoError(t, err)
	require.Len(t, doc.Courses, 1)
	require.Empty(t, doc.Students)
}

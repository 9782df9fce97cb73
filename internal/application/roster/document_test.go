package roster

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
courses:
  - code: CS101
    name: Intro
    capacity: 1
  - code: MA201
    name: Algebra
    capacity: 10
students:
  - name: Bob
    enrollments:
      - course: CS101
        grade: 95
      - course: Algebra
  - name: Carl
    enrollments:
      - course: Intro
  - name: Dana
`

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "roster.yaml", want: FormatYAML},
		{name: "roster.YML", want: FormatYAML},
		{name: "dir/roster.xlsx", want: FormatXLSX},
		{name: "roster.csv", wantErr: true},
		{name: "roster", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseYAML(t *testing.T) {
	doc, err := ParseYAML([]byte(sampleYAML))
	require.NoError(t, err)

	require.Equal(t, []CourseEntry{
		{Code: "CS101", Name: "Intro", Capacity: 1},
		{Code: "MA201", Name: "Algebra", Capacity: 10},
	}, doc.Courses)
	require.Len(t, doc.Students, 3)
	require.Equal(t, "Bob", doc.Students[0].Name)
	require.Len(t, doc.Students[0].Enrollments, 2)
	require.NotNil(t, doc.Students[0].Enrollments[0].Grade)
	require.Equal(t, 95, *doc.Students[0].Enrollments[0].Grade)
	require.Nil(t, doc.Students[0].Enrollments[1].Grade)
	require.Empty(t, doc.Students[2].Enrollments)
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{name: "unknown field", content: "courses:\n  - code: A\n    title: x\n", errContains: "field title not found"},
		{name: "bad capacity", content: "courses:\n  - code: A\n    capacity: lots\n", errContains: "parsing roster yaml"},
		{name: "not a mapping", content: "- just\n- a list\n", errContains: "parsing roster yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.content))
			require.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestParseYAML_Empty(t *testing.T) {
	doc, err := ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, doc.Courses)
	require.Empty(t, doc.Students)
}

func TestRead(t *testing.T) {
	fsys := fstest.MapFS{
		"roster.yaml": &fstest.MapFile{Data: []byte(sampleYAML)},
		"roster.txt":  &fstest.MapFile{Data: []byte("nope")},
	}

	doc, err := Read(fsys, "roster.yaml")
	require.NoError(t, err)
	require.Len(t, doc.Courses, 2)

	_, err = Read(fsys, "roster.txt")
	require.ErrorContains(t, err, "unsupported roster format")

	_, err = Read(fsys, "missing.yaml")
	require.ErrorContains(t, err, "reading roster")
}

package shell

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/registrar/internal/application/enrollment"
)

func TestRenderCourses_Empty(t *testing.T) {
	require.Equal(t, "No courses yet.", renderCourses(nil, 80))
}

func TestRenderCourses_AlignsColumns(t *testing.T) {
	out := renderCourses([]enrollment.CourseView{
		{Code: "CS101", Name: "Intro to CS", Capacity: 3, Enrolled: 2, SeatsLeft: 1},
		{Code: "JP100", Name: "日本語入門", Capacity: 10, Enrolled: 0, SeatsLeft: 10},
	}, 0)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	sep := make([]int, len(lines))
	for i, line := range lines {
		idx := strings.Index(line, "│")
		require.Positive(t, idx)
		sep[i] = runewidth.StringWidth(line[:idx])
	}
	require.Equal(t, sep[0], sep[1])
	require.Equal(t, sep[0], sep[2])

	second := strings.Split(lines[1], "│")[1]
	third := strings.Split(lines[2], "│")[1]
	require.Equal(t, runewidth.StringWidth(second), runewidth.StringWidth(third), "wide runes pad to the same cell width")
}

func TestRenderCourses_TruncatesLongNames(t *testing.T) {
	out := renderCourses([]enrollment.CourseView{
		{Code: "HI300", Name: strings.Repeat("History of ", 10), Capacity: 5},
	}, 60)

	require.Contains(t, out, "…")
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, runewidth.StringWidth(line), 60)
	}
}

func TestRenderTranscript(t *testing.T) {
	out := renderTranscript(enrollment.Transcript{
		Student: enrollment.StudentView{ID: 1, Name: "Bob"},
		Rows: []enrollment.TranscriptRow{
			{Course: enrollment.CourseRef{Code: "CS101", Name: "Intro to CS"}, Grade: 90, Graded: true},
			{Course: enrollment.CourseRef{Code: "PH110", Name: "Physics"}},
		},
		Average: 90,
	}, 80)

	require.Contains(t, out, "90")
	require.Contains(t, out, "Physics")
	lines := strings.Split(out, "\n")
	require.Contains(t, lines, " PH110 │ Physics     │ -", "ungraded row shows a dash")
	for _, line := range lines {
		require.Equal(t, strings.TrimRight(line, " "), line, "no trailing padding")
	}
	require.True(t, strings.HasSuffix(out, "Average: 90.00"))
}

func TestRenderTranscript_NoCourses(t *testing.T) {
	out := renderTranscript(enrollment.Transcript{Student: enrollment.StudentView{ID: 4, Name: "Eve"}}, 80)
	require.Equal(t, "Not enrolled in any course.", out)
}

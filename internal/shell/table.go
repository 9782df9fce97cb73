package shell

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/registrar/internal/application/enrollment"
)

const (
	minNameWidth = 12
	ellipsis     = "…"
)

// table renders aligned columns. Widths are measured in terminal cells.
type table struct {
	headers []string
	rows    [][]string
}

func (t table) render(maxWidth int) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	// Shrink the widest column (the name) to fit the terminal.
	if maxWidth > 0 && len(widths) > 1 {
		total := len(widths) - 1
		for _, w := range widths {
			total += 2 + w
		}
		if over := total - maxWidth; over > 0 {
			widths[1] = max(minNameWidth, widths[1]-over)
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(t.line(t.headers, widths)))
	for _, row := range t.rows {
		b.WriteString("\n")
		b.WriteString(t.line(row, widths))
	}
	return b.String()
}

func (t table) line(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if runewidth.StringWidth(cell) > widths[i] {
			cell = truncate.StringWithTail(cell, uint(widths[i]), ellipsis)
		}
		parts[i] = " " + runewidth.FillRight(cell, widths[i]) + " "
	}
	return strings.TrimRight(strings.Join(parts, "│"), " ")
}

func renderCourses(courses []enrollment.CourseView, width int) string {
	if len(courses) == 0 {
		return hintStyle.Render("No courses yet.")
	}
	t := table{headers: []string{"Code", "Name", "Enrolled", "Capacity", "Seats"}}
	for _, c := range courses {
		t.rows = append(t.rows, []string{
			c.Code,
			c.Name,
			strconv.Itoa(c.Enrolled),
			strconv.Itoa(c.Capacity),
			strconv.Itoa(c.SeatsLeft),
		})
	}
	return t.render(width)
}

func renderTranscript(tr enrollment.Transcript, width int) string {
	if len(tr.Rows) == 0 {
		return hintStyle.Render("Not enrolled in any course.")
	}
	t := table{headers: []string{"Code", "Course", "Grade"}}
	for _, row := range tr.Rows {
		grade := "-"
		if row.Graded {
			grade = strconv.Itoa(row.Grade)
		}
		t.rows = append(t.rows, []string{row.Course.Code, row.Course.Name, grade})
	}
	return t.render(width) + "\n\n" + "Average: " + strconv.FormatFloat(tr.Average, 'f', 2, 64)
}

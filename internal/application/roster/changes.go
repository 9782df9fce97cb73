package roster

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Changes summarizes an edit between two versions of a roster file.
type Changes struct {
	Added   int
	Removed int

	// Modified is set for binary formats, where lines are meaningless.
	Modified bool
}

// Changed reports whether the two versions differ at all.
func (c Changes) Changed() bool {
	return c.Modified || c.Added > 0 || c.Removed > 0
}

// Compare counts the lines added and removed between before and after.
// XLSX files are compared byte for byte.
func Compare(format Format, before, after []byte) Changes {
	if format == FormatXLSX {
		return Changes{Modified: !bytes.Equal(before, after)}
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var c Changes
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			c.Added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			c.Removed += countLines(d.Text)
		}
	}
	return c
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

package operation

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change
const diffContext = 2

// UnifiedDiff renders a line diff between before and after.
// Unchanged runs longer than the context are collapsed to an "@@" line.
func UnifiedDiff(path, before, after string) string {
	a, b, lines := lineRunes(before, after)
	diffs := diffmatchpatch.New().DiffMainRunes(a, b, false)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", path, path)

	for i, d := range diffs {
		segment := make([]string, 0, len(d.Text))
		for _, r := range d.Text {
			segment = append(segment, lines[r])
		}
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&buf, "-", segment)
		case diffmatchpatch.DiffInsert:
			writeLines(&buf, "+", segment)
		case diffmatchpatch.DiffEqual:
			first, last := i == 0, i == len(diffs)-1
			switch {
			case first && last:
				// identical inputs
			case first:
				if len(segment) > diffContext {
					buf.WriteString("@@\n")
					segment = segment[len(segment)-diffContext:]
				}
				writeLines(&buf, " ", segment)
			case last:
				if len(segment) > diffContext {
					writeLines(&buf, " ", segment[:diffContext])
					buf.WriteString("@@\n")
				} else {
					writeLines(&buf, " ", segment)
				}
			case len(segment) > 2*diffContext:
				writeLines(&buf, " ", segment[:diffContext])
				buf.WriteString("@@\n")
				writeLines(&buf, " ", segment[len(segment)-diffContext:])
			default:
				writeLines(&buf, " ", segment)
			}
		}
	}

	return buf.String()
}

// lineRunes maps every distinct line of before and after to its own rune so
// the diff runs over whole lines.
func lineRunes(before, after string) ([]rune, []rune, map[rune]string) {
	index := map[string]rune{}
	lines := map[rune]string{}
	next := 0

	encode := func(s string) []rune {
		out := []rune{}
		for _, l := range splitLines(s) {
			r, ok := index[l]
			if !ok {
				r = lineRune(next)
				next++
				index[l] = r
				lines[r] = l
			}
			out = append(out, r)
		}
		return out
	}

	return encode(before), encode(after), lines
}

func lineRune(n int) rune {
	r := rune(n + 1)
	if r >= 0xD800 {
		// surrogates do not survive a string conversion
		r += 0x800
	}
	return r
}

func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func writeLines(buf *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		buf.WriteString(prefix)
		buf.WriteString(strings.TrimSuffix(l, "\n"))
		buf.WriteString("\n")
	}
}

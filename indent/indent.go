package indent

import (
	"errors"
	"strings"
)

const (
	// DefaultTabWidth is the tab-stop width assumed when callers have no
	// stronger opinion.
	DefaultTabWidth = 4

	// DefaultIndentUnit is the indent applied per nesting level by default.
	DefaultIndentUnit = "\t"
)

// ErrInvalidTabWidth is returned when a tab width of zero or less is given.
var ErrInvalidTabWidth = errors.New("tab width must be positive")

// Untabify replaces every tab with the number of spaces needed to reach the
// next tab stop. Tab stops are measured from the start of each line. The
// result contains no tab characters.
func Untabify(s string, tabWidth int) (string, error) {
	if tabWidth < 1 {
		return "", ErrInvalidTabWidth
	}
	return eachLine(s, func(line string) string {
		return untabifyLine(line, tabWidth)
	}), nil
}

// Tabify collapses runs of two or more spaces that end on a tab-stop
// boundary into single tabs. Boundaries are measured from the start of each
// line. A lone space on a boundary is left alone; converting it would not
// change the rendered width.
func Tabify(s string, tabWidth int) (string, error) {
	if tabWidth < 1 {
		return "", ErrInvalidTabWidth
	}
	return eachLine(s, func(line string) string {
		return tabifyLine(line, tabWidth)
	}), nil
}

// Reindent normalizes the indentation of a block of text. Existing tabs are
// expanded, the smallest leading-whitespace width shared by the non-blank
// lines is stripped from every line, indentUnit is prepended to each
// non-blank line, and aligned space runs are collapsed back into tabs.
// Whitespace-only lines come out empty. Relative indentation beyond the
// common baseline is preserved.
//
// Reindent is idempotent: feeding its output back in with the same
// indentUnit and tabWidth returns the output unchanged.
func Reindent(s, indentUnit string, tabWidth int) (string, error) {
	if tabWidth < 1 {
		return "", ErrInvalidTabWidth
	}
	unit := untabifyLine(indentUnit, tabWidth)

	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")

	minIndent := -1
	for i, line := range lines {
		line = untabifyLine(line, tabWidth)
		stripped := strings.TrimLeft(line, " ")
		if strings.TrimSpace(stripped) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = line
		if lead := len(line) - len(stripped); minIndent < 0 || lead < minIndent {
			minIndent = lead
		}
	}
	if minIndent < 0 {
		// Only blank lines.
		return strings.Join(lines, "\n"), nil
	}

	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = tabifyLine(unit+line[minIndent:], tabWidth)
	}
	return strings.Join(lines, "\n"), nil
}

// eachLine applies fn to every line of s independently, preserving the line
// structure.
func eachLine(s string, fn func(string) string) string {
	if !strings.Contains(s, "\n") {
		return fn(s)
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	return strings.Join(lines, "\n")
}

// tabSpan reports how many columns a tab occupies at column i. The result is
// always in [1, tabWidth].
func tabSpan(i, tabWidth int) int {
	return tabWidth - i%tabWidth
}

func untabifyLine(line string, tabWidth int) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	b.Grow(len(line) + 4*tabWidth)
	col := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			span := tabSpan(col, tabWidth)
			for n := 0; n < span; n++ {
				b.WriteByte(' ')
			}
			col += span
			continue
		}
		b.WriteByte(line[i])
		col++
	}
	return b.String()
}

func tabifyLine(line string, tabWidth int) string {
	if len(line) < tabWidth {
		return line
	}
	b := []byte(line)
	// Walk the tab-stop boundaries from the tail of the line toward the
	// start, so a replacement never shifts a boundary still to be visited.
	for i := len(b) - len(b)%tabWidth - tabWidth; i >= 0; i -= tabWidth {
		end := i + tabWidth
		spaces := 0
		for spaces < tabWidth && b[end-spaces-1] == ' ' {
			spaces++
		}
		if spaces > 1 {
			b[end-spaces] = '\t'
			copy(b[end-spaces+1:], b[end:])
			b = b[:len(b)-(spaces-1)]
		}
	}
	return string(b)
}

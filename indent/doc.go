// Package indent converts text between tab and space indentation and
// re-indents blocks of text to a uniform style.
//
// The three operations are:
//   - Untabify expands every tab into the spaces needed to reach the next
//     tab stop.
//   - Tabify collapses runs of spaces that end on a tab-stop boundary back
//     into tabs.
//   - Reindent strips the common leading whitespace from a block and
//     re-applies a caller-supplied indent unit to every non-blank line.
//
// Tab stops are computed per line: a tab at byte offset i within its line
// advances tabWidth - (i % tabWidth) columns. Columns are byte offsets,
// which is exact for the ASCII whitespace this package operates on.
//
// All functions are pure and safe for concurrent use.
package indent

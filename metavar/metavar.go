// Package metavar substitutes named metavariables in text.
//
// A metavariable may be written in any of three forms:
//
//	{% name %}
//	$( name )
//	%( name )
//
// Names are case sensitive; whitespace inside the delimiters is ignored, so
// {%name%} matches the same as {% name %}.
package metavar

import (
	"regexp"
	"strings"
)

// Replace substitutes every occurrence of the named metavariable in text
// with repl. The replacement is literal; repl is never interpreted as a
// pattern.
func Replace(name, repl, text string) string {
	quoted := regexp.QuoteMeta(strings.TrimSpace(name))

	// {% name %}
	braces := regexp.MustCompile(`\{%[\t ]*` + quoted + `[\t ]*%\}`)
	text = braces.ReplaceAllLiteralString(text, repl)

	// $( name ) and %( name )
	parens := regexp.MustCompile(`[$%]\([\t ]*` + quoted + `[\t ]*\)`)
	return parens.ReplaceAllLiteralString(text, repl)
}

package emitter

import "strings"

// DefaultDirectives are the markers of preprocessor scaffolding removed from
// the amalgamation, which carries its own guards.
var DefaultDirectives = []string{
	"#ifndef",
	"#define",
	"#include",
	"#endif",
	"#pragma",
	"#if",
	"#error",
	`extern "C" {`,
}

// LineFilter decides which lines reach the output. It drops lines containing
// any directive marker and lets only the first blank line of a run through.
// The blank-line run survives across files so a file ending in blanks followed
// by a file starting with blanks still yields a single blank line.
type LineFilter struct {
	directives []string
	blankRun   int
}

// NewLineFilter returns a filter for the given directive markers.
func NewLineFilter(directives []string) *LineFilter {
	return &LineFilter{directives: directives}
}

// Keep reports whether line belongs in the output. Lines are expected with
// their line terminator still attached.
func (f *LineFilter) Keep(line string) bool {
	if f.isDirective(line) {
		return false
	}

	if isBlank(line) {
		f.blankRun++
		return f.blankRun == 1
	}

	f.blankRun = 0
	return true
}

func (f *LineFilter) isDirective(line string) bool {
	for _, directive := range f.directives {
		if strings.Contains(line, directive) {
			return true
		}
	}
	return false
}

func isBlank(line string) bool {
	return line != "" && strings.TrimSpace(line) == ""
}

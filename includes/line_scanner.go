package includes

import (
	"regexp"
	"strings"
)

var (
	// System includes only count when the directive opens the line.
	systemIncludePattern = regexp.MustCompile(`^#include <(.*?)>`)
	localIncludePattern  = regexp.MustCompile(`#include "(.*?)"`)
)

// LineScanner finds includes by matching each line against textual patterns.
// It does not understand comments, string literals or conditional blocks.
type LineScanner struct{}

// Scan implements Scanner.
func (LineScanner) Scan(content []byte) ([]Include, error) {
	var found []Include

	for i, line := range strings.Split(string(content), "\n") {
		if m := systemIncludePattern.FindStringSubmatch(line); m != nil {
			found = append(found, Include{Path: m[1], Kind: IncludeSystem, Line: i + 1})
			continue
		}

		m := localIncludePattern.FindStringSubmatch(line)
		if m == nil || m[1] == "" {
			continue
		}
		found = append(found, Include{Path: m[1], Kind: IncludeLocal, Line: i + 1})
	}

	return found, nil
}

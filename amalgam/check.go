package amalgam

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/LegacyCodeHQ/amalgam/emitter"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	// ErrStale is returned by Check when the target differs from a fresh build.
	ErrStale = errors.New("amalgamation is out of date")
	// ErrCheckAppend is returned when Check is asked to verify an append run.
	ErrCheckAppend = errors.New("check is not supported with append write mode")
)

// Check renders the amalgamation in memory and compares it with the current
// target. It returns a line diff and ErrStale when they differ. The target
// is never modified.
func Check(opts Options) (*Report, string, error) {
	if opts.WriteMode == emitter.WriteModeAppend {
		return nil, "", ErrCheckAppend
	}

	report, err := Plan(opts)
	if err != nil {
		return nil, "", err
	}

	var rendered bytes.Buffer
	stats, err := emitter.New(opts.Directives).WriteTo(&rendered, report.Headers, report.Sources)
	if err != nil {
		return report, "", fmt.Errorf("failed to render amalgamation: %w", err)
	}
	report.Stats = stats

	current, err := os.ReadFile(report.TargetPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return report, "", fmt.Errorf("failed to read %s: %w", report.TargetPath, err)
	}

	if bytes.Equal(current, rendered.Bytes()) {
		return report, "", nil
	}

	diff := LineDiff(string(current), rendered.String())
	return report, diff, fmt.Errorf("%w: %s", ErrStale, report.TargetPath)
}

// LineDiff renders the lines removed from before ("-") and added in after ("+").
func LineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(beforeChars, afterChars, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

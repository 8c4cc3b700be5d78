// Package amalgam runs the header collection and emission pipeline that turns
// a multi-file C/C++ project into a single amalgamated header.
package amalgam

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgam/collector"
	"github.com/LegacyCodeHQ/amalgam/emitter"
	"github.com/LegacyCodeHQ/amalgam/includes"
)

var (
	// ErrNoSources is returned when no source file is given.
	ErrNoSources = errors.New("at least one source file is required")
	// ErrTargetIsSource is returned when the target would overwrite one of
	// the sources it is built from.
	ErrTargetIsSource = errors.New("target path is one of the source files")
)

// Options configures one amalgamation run.
type Options struct {
	Sources     []string
	TargetPath  string
	Blacklist   []string
	WriteMode   emitter.WriteMode
	HeaderOrder collector.HeaderOrder
	Scanner     includes.Scanner
	// Directives overrides emitter.DefaultDirectives when non-nil.
	Directives []string
}

// Report describes what a run collected and wrote.
type Report struct {
	TargetPath string
	Collection *collector.Result
	// Headers are the emitted headers, in emission order.
	Headers []string
	Sources []string
	Stats   emitter.Stats
}

// Collect runs only the header collection stage.
func Collect(opts Options) (*collector.Result, error) {
	if len(opts.Sources) == 0 {
		return nil, ErrNoSources
	}

	result, err := collector.Collect(opts.Sources, collector.Options{
		Blacklist: opts.Blacklist,
		Scanner:   opts.Scanner,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect headers: %w", err)
	}
	return result, nil
}

// Build collects every header reachable from the sources and writes the
// amalgamation to the target.
func Build(opts Options) (*Report, error) {
	report, err := Plan(opts)
	if err != nil {
		return nil, err
	}

	stats, err := emitter.New(opts.Directives).Emit(report.TargetPath, report.Headers, opts.WriteMode, report.Sources)
	if err != nil {
		return report, fmt.Errorf("failed to write %s: %w", report.TargetPath, err)
	}
	report.Stats = stats

	return report, nil
}

// Plan collects headers and decides what a build would emit without
// touching the target.
func Plan(opts Options) (*Report, error) {
	targetPath, err := filepath.Abs(opts.TargetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target path %s: %w", opts.TargetPath, err)
	}

	result, err := Collect(opts)
	if err != nil {
		return nil, err
	}

	for _, root := range result.Roots {
		if sameFile(root, targetPath) {
			return nil, fmt.Errorf("%w: %s", ErrTargetIsSource, root)
		}
	}

	return &Report{
		TargetPath: targetPath,
		Collection: result,
		Headers:    withoutTarget(result.Ordered(opts.HeaderOrder), targetPath),
		Sources:    result.Roots,
	}, nil
}

// sameFile also catches a target reached through a link to a source.
func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// withoutTarget drops the target from the headers so a project that includes
// a previous amalgamation never reads the file being rewritten.
func withoutTarget(headers []string, targetPath string) []string {
	result := make([]string, 0, len(headers))
	for _, header := range headers {
		if header == targetPath {
			log.Warnf("Skipping target file found among headers: %s", header)
			continue
		}
		result = append(result, header)
	}
	return result
}

package emitter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/log"
)

// Stats summarizes one emission pass.
type Stats struct {
	Files        int
	LinesRead    int
	LinesWritten int
	LinesDropped int
	BytesWritten int64
}

// Emitter writes headers and sources through a LineFilter into one stream.
type Emitter struct {
	directives []string
}

// New returns an Emitter that strips lines containing any of directives.
// A nil slice selects DefaultDirectives.
func New(directives []string) *Emitter {
	if directives == nil {
		directives = DefaultDirectives
	}
	return &Emitter{directives: append([]string(nil), directives...)}
}

// Directives returns a copy of the directive markers this Emitter strips.
func (e *Emitter) Directives() []string {
	return append([]string(nil), e.directives...)
}

// Emit opens targetPath according to mode and writes the filtered headers
// followed by the filtered sources.
func (e *Emitter) Emit(targetPath string, headers []string, mode WriteMode, sources []string) (stats Stats, err error) {
	flags, err := mode.openFlags()
	if err != nil {
		return Stats{}, err
	}

	target, err := os.OpenFile(targetPath, flags, 0o644)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open target %s: %w", targetPath, err)
	}
	defer func() {
		if closeErr := target.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close target %s: %w", targetPath, closeErr)
		}
	}()

	return e.WriteTo(target, headers, sources)
}

// WriteTo writes the filtered headers followed by the filtered sources to w.
// One LineFilter spans the whole pass.
func (e *Emitter) WriteTo(w io.Writer, headers, sources []string) (Stats, error) {
	out := &countingWriter{w: bufio.NewWriter(w)}
	filter := NewLineFilter(e.directives)
	var stats Stats

	log.Infof("[Processing %d headers]", len(headers))
	for _, path := range headers {
		if err := emitFile(out, filter, path, &stats); err != nil {
			return stats, err
		}
	}

	log.Infof("[Processing %d sources]", len(sources))
	for _, path := range sources {
		if err := emitFile(out, filter, path, &stats); err != nil {
			return stats, err
		}
	}

	if err := out.w.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}
	stats.BytesWritten = out.n
	return stats, nil
}

func emitFile(out *countingWriter, filter *LineFilter, path string, stats *Stats) error {
	log.Infof("Processing %s", path)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			stats.LinesRead++
			if filter.Keep(line) {
				if line[len(line)-1] != '\n' {
					line += "\n"
				}
				if _, err := out.WriteString(line); err != nil {
					return fmt.Errorf("failed to write line from %s: %w", path, err)
				}
				stats.LinesWritten++
			} else {
				stats.LinesDropped++
			}
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}
	}

	stats.Files++
	return nil
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) WriteString(s string) (int, error) {
	n, err := c.w.WriteString(s)
	c.n += int64(n)
	return n, err
}

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgam/amalgam"
	"github.com/LegacyCodeHQ/amalgam/collector"
	"github.com/LegacyCodeHQ/amalgam/emitter"
	"github.com/LegacyCodeHQ/amalgam/internal/cli"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// ErrAppendMode is returned when watch is started with the append write
// mode, which would add a full copy of the output on every rebuild.
var ErrAppendMode = errors.New("watch is not supported with append write mode")

func watchAndRebuild(ctx context.Context, out io.Writer, opts amalgam.Options) error {
	if opts.WriteMode == emitter.WriteModeAppend {
		return ErrAppendMode
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	b := newBuilder(out, opts, watcher.Add)
	if err := b.rebuild(); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	fmt.Fprintf(out, "Watching %d files\n", len(b.files))
	fmt.Fprintf(out, "Press Ctrl+C to stop\n")

	// Rebuilds run on this goroutine so they never overlap.
	pending := make(chan struct{}, 1)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevantChange(event, b.files, b.targetPath) {
				continue
			}
			log.LogVf("Change detected: %s", event)

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			if err := b.rebuild(); err != nil {
				log.Errf("Rebuild failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errf("Watcher error: %v", err)
		}
	}
}

// builder rebuilds the amalgamation and keeps the watch list in step with
// the files the last successful build depended on.
type builder struct {
	out        io.Writer
	opts       amalgam.Options
	addDir     func(path string) error
	targetPath string
	dirs       map[string]bool
	files      map[string]bool
}

func newBuilder(out io.Writer, opts amalgam.Options, addDir func(path string) error) *builder {
	return &builder{
		out:    out,
		opts:   opts,
		addDir: addDir,
		dirs:   make(map[string]bool),
		files:  make(map[string]bool),
	}
}

func (b *builder) rebuild() error {
	report, err := amalgam.Build(b.opts)
	if err != nil {
		return err
	}

	b.targetPath = report.TargetPath
	b.track(watchedFiles(report))

	return cli.PrintCompletion(b.out, report)
}

func (b *builder) track(files map[string]bool) {
	for path := range files {
		dir := filepath.Dir(path)
		if b.dirs[dir] {
			continue
		}
		if err := b.addDir(dir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warnf("Failed to watch %s: %v", dir, err)
			}
			continue
		}
		b.dirs[dir] = true
	}
	b.files = files
}

// watchedFiles lists every file whose change can alter the output: the
// sources, the collected headers and includes that did not resolve yet.
func watchedFiles(report *amalgam.Report) map[string]bool {
	files := make(map[string]bool)
	result := report.Collection
	for _, root := range result.Roots {
		files[root] = true
	}
	for _, header := range result.Headers {
		files[header] = true
	}
	for _, skipped := range result.Skipped {
		if skipped.Reason == collector.SkipMissing {
			files[skipped.Resolved] = true
		}
	}
	delete(files, report.TargetPath)
	return files
}

func isRelevantChange(event fsnotify.Event, files map[string]bool, targetPath string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	path := filepath.Clean(event.Name)
	if path == targetPath {
		return false
	}
	return files[path]
}

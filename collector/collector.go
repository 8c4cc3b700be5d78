package collector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgam/includes"
	"github.com/LegacyCodeHQ/amalgam/source"
	graphlib "github.com/dominikbraun/graph"
)

// SkipReason explains why an include was not followed.
type SkipReason int

const (
	SkipBlacklisted SkipReason = iota
	SkipMissing
)

func (r SkipReason) String() string {
	switch r {
	case SkipBlacklisted:
		return "blacklisted"
	case SkipMissing:
		return "missing"
	default:
		return fmt.Sprintf("SkipReason(%d)", int(r))
	}
}

// SkippedInclude records an include directive that was not followed.
type SkippedInclude struct {
	From     string
	Include  string
	Resolved string
	Reason   SkipReason
}

// Options configures a collection run. Zero values fall back to the line
// scanner, the filesystem reader and an on-disk existence check.
type Options struct {
	Blacklist     []string
	Scanner       includes.Scanner
	ContentReader source.ContentReader
	Exists        func(path string) bool
}

// Result is the outcome of collecting headers from a set of root files.
type Result struct {
	// Roots are the absolute paths of the files collection started from.
	Roots []string
	// Headers lists every reachable header once, in first-discovery order.
	Headers []string
	// DependencyOrder lists the same headers with each one placed after the
	// headers it includes. Headers on a cycle keep their discovery order.
	DependencyOrder []string
	// IncludedBy maps each header to the file it was first discovered from.
	IncludedBy map[string]string
	// Graph holds every include edge between roots and headers.
	Graph   graphlib.Graph[string, string]
	Skipped []SkippedInclude
}

// NewIncludeGraph returns an empty directed include graph keyed by path.
func NewIncludeGraph() graphlib.Graph[string, string] {
	return graphlib.New(graphlib.StringHash, graphlib.Directed())
}

// CollectHeaders returns every header reachable from filePath through quoted
// includes, skipping includes that contain any blacklist entry.
func CollectHeaders(filePath string, blacklist []string) ([]string, error) {
	result, err := Collect([]string{filePath}, Options{Blacklist: blacklist})
	if err != nil {
		return nil, err
	}
	return result.Headers, nil
}

// Collect walks the include graph of every root and returns the unique
// headers it reaches. Roots are never reported as headers, even when another
// root includes them.
func Collect(roots []string, opts Options) (*Result, error) {
	if opts.Scanner == nil {
		opts.Scanner = includes.LineScanner{}
	}
	if opts.ContentReader == nil {
		opts.ContentReader = source.FilesystemContentReader
	}
	if opts.Exists == nil {
		opts.Exists = source.IsRegularFile
	}

	c := &collector{
		opts:      opts,
		blacklist: normalizeBlacklist(opts.Blacklist),
		graph:     NewIncludeGraph(),
		result: &Result{
			IncludedBy: make(map[string]string),
		},
	}

	absRoots, err := c.registerRoots(roots)
	if err != nil {
		return nil, err
	}

	for _, root := range absRoots {
		if err := c.visit(root); err != nil {
			return nil, err
		}
	}

	c.result.Roots = absRoots
	c.result.Graph = c.graph
	return c.result, nil
}

type collector struct {
	opts      Options
	blacklist []string
	graph     graphlib.Graph[string, string]
	result    *Result
}

func (c *collector) registerRoots(roots []string) ([]string, error) {
	absRoots := make([]string, 0, len(roots))
	for _, root := range roots {
		absPath, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", root, err)
		}

		if err := c.graph.AddVertex(absPath); err != nil {
			if errors.Is(err, graphlib.ErrVertexAlreadyExists) {
				log.LogVf("Ignoring duplicate source file: %s", absPath)
				continue
			}
			return nil, err
		}
		absRoots = append(absRoots, absPath)
	}
	return absRoots, nil
}

// visit scans filePath and recurses into every header not seen before. The
// graph's vertex set is the visited set, so it is checked before recursing.
func (c *collector) visit(filePath string) error {
	content, err := c.opts.ContentReader(filePath)
	if err != nil {
		return err
	}

	found, err := c.opts.Scanner.Scan(content)
	if err != nil {
		return fmt.Errorf("failed to scan includes in %s: %w", filePath, err)
	}

	sourceDir := filepath.Dir(filePath)

	for _, inc := range includes.LocalIncludes(found) {
		if c.isBlacklisted(inc.Path) {
			log.Infof("Skipping blacklisted file: %s", inc.Path)
			c.skip(filePath, inc.Path, "", SkipBlacklisted)
			continue
		}

		includedPath, err := filepath.Abs(filepath.Join(sourceDir, inc.Path))
		if err != nil {
			return fmt.Errorf("failed to resolve include %q in %s: %w", inc.Path, filePath, err)
		}

		if !c.opts.Exists(includedPath) {
			log.Warnf("Skipping non existing file: %s", includedPath)
			c.skip(filePath, inc.Path, includedPath, SkipMissing)
			continue
		}

		isNew, err := c.addHeaderVertex(includedPath)
		if err != nil {
			return err
		}
		if err := c.addEdge(filePath, includedPath); err != nil {
			return err
		}

		if !isNew {
			log.LogVf("Already collected: %s", includedPath)
			continue
		}

		log.Infof("Found header for processing: %s", includedPath)
		c.result.Headers = append(c.result.Headers, includedPath)
		c.result.IncludedBy[includedPath] = filePath

		if err := c.visit(includedPath); err != nil {
			return err
		}
		c.result.DependencyOrder = append(c.result.DependencyOrder, includedPath)
	}

	return nil
}

func (c *collector) addHeaderVertex(path string) (bool, error) {
	err := c.graph.AddVertex(path)
	if errors.Is(err, graphlib.ErrVertexAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *collector) addEdge(from, to string) error {
	if from == to {
		log.LogVf("Ignoring self include in %s", from)
		return nil
	}
	if err := c.graph.AddEdge(from, to); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return fmt.Errorf("failed to record include %s -> %s: %w", from, to, err)
	}
	return nil
}

func (c *collector) skip(from, include, resolved string, reason SkipReason) {
	c.result.Skipped = append(c.result.Skipped, SkippedInclude{
		From:     from,
		Include:  include,
		Resolved: resolved,
		Reason:   reason,
	})
}

func (c *collector) isBlacklisted(includePath string) bool {
	for _, entry := range c.blacklist {
		if strings.Contains(includePath, entry) {
			return true
		}
	}
	return false
}

// normalizeBlacklist drops empty entries, which would otherwise match every include.
func normalizeBlacklist(blacklist []string) []string {
	result := make([]string, 0, len(blacklist))
	for _, entry := range blacklist {
		if entry != "" {
			result = append(result, entry)
		}
	}
	return result
}

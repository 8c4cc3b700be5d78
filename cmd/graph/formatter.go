package graph

import "fmt"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatMermaid OutputFormat = "mermaid"
)

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// formatter renders an include graph as text.
type formatter interface {
	Format(g includeGraph) string
}

func newFormatter(format string) (formatter, error) {
	switch OutputFormat(format) {
	case OutputFormatDOT:
		return dotFormatter{}, nil
	case OutputFormatMermaid:
		return mermaidFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: %s, %s)", format, OutputFormatDOT, OutputFormatMermaid)
	}
}

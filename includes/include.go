package includes

import "fmt"

// IncludeKind distinguishes between system and local includes.
type IncludeKind int

const (
	IncludeLocal IncludeKind = iota
	IncludeSystem
)

func (k IncludeKind) String() string {
	switch k {
	case IncludeLocal:
		return "local"
	case IncludeSystem:
		return "system"
	default:
		return fmt.Sprintf("IncludeKind(%d)", int(k))
	}
}

// Include represents an include directive found in a C or C++ file.
type Include struct {
	Path string
	Kind IncludeKind
	// Line is the 1-based line the directive starts on.
	Line int
}

// Scanner extracts include directives from file content.
type Scanner interface {
	Scan(content []byte) ([]Include, error)
}

// ScannerKind names an include scanner implementation.
type ScannerKind string

const (
	ScannerLine   ScannerKind = "line"
	ScannerSyntax ScannerKind = "syntax"
)

func (k ScannerKind) String() string {
	return string(k)
}

// NewScanner returns the scanner implementation for kind.
func NewScanner(kind ScannerKind) (Scanner, error) {
	switch kind {
	case ScannerLine, "":
		return LineScanner{}, nil
	case ScannerSyntax:
		return SyntaxScanner{}, nil
	default:
		return nil, fmt.Errorf("unknown include scanner: %s (valid options: %s, %s)", kind, ScannerLine, ScannerSyntax)
	}
}

// LocalIncludes filters includes down to quoted, project-relative ones.
func LocalIncludes(all []Include) []Include {
	var local []Include
	for _, inc := range all {
		if inc.Kind == IncludeLocal {
			local = append(local, inc)
		}
	}
	return local
}

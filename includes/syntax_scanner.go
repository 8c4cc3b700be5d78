package includes

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// SyntaxScanner parses content with the tree-sitter C++ grammar and reports
// only real preprocessor includes, so directives inside comments or string
// literals are ignored. The C++ grammar accepts plain C headers as well.
type SyntaxScanner struct{}

// Scan implements Scanner.
func (SyntaxScanner) Scan(content []byte) ([]Include, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse C/C++ code: %w", err)
	}
	defer tree.Close()

	return extractIncludes(tree.RootNode(), content), nil
}

func extractIncludes(rootNode *sitter.Node, content []byte) []Include {
	var found []Include

	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		if n.Type() == "preproc_include" {
			if inc := extractIncludeFromNode(n, content); inc.Path != "" {
				found = append(found, inc)
			}
		}

		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}

	walk(rootNode)
	return found
}

func extractIncludeFromNode(node *sitter.Node, content []byte) Include {
	line := int(node.StartPoint().Row) + 1

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "string_literal":
			return Include{Path: cleanStringLiteral(child.Content(content)), Kind: IncludeLocal, Line: line}
		case "system_lib_string":
			return Include{Path: cleanSystemInclude(child.Content(content)), Kind: IncludeSystem, Line: line}
		}
	}

	return Include{}
}

func cleanStringLiteral(raw string) string {
	return strings.Trim(raw, "\"' ")
}

func cleanSystemInclude(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "<")
	trimmed = strings.TrimSuffix(trimmed, ">")
	return strings.TrimSpace(trimmed)
}

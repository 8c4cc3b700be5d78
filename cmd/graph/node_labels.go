package graph

import (
	"path/filepath"
	"strings"
)

// nodeLabels names each vertex by the shortest trailing part of its path
// that no other vertex ends with. Includes of api/types.h and
// detail/types.h become "api/types.h" and "detail/types.h" while a lone
// config.h stays "config.h".
func nodeLabels(paths []string) map[string]string {
	segments := make(map[string][]string, len(paths))
	for _, path := range paths {
		segments[path] = strings.Split(strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/"), "/")
	}

	labels := make(map[string]string, len(paths))
	for _, path := range paths {
		own := segments[path]
		depth := 1
		for _, other := range paths {
			if other == path {
				continue
			}
			if shared := sharedTail(own, segments[other]); shared+1 > depth {
				depth = shared + 1
			}
		}
		depth = min(depth, len(own))
		labels[path] = strings.Join(own[len(own)-depth:], "/")
	}
	return labels
}

// sharedTail counts the trailing segments a and b have in common.
func sharedTail(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

package transfer

import (
	"strings"

	"github.com/tonimelisma/osf-go/internal/remotepath"
)

// ListFilter narrows a project listing to a single storage provider and a
// directory-containment pattern, both derived from an optional base path.
// The zero value matches every provider and every file.
type ListFilter struct {
	// Provider restricts iteration to one storage provider; "" means all.
	Provider string
	// Pattern is a wildcard path matched against each file's materialized
	// path; "" matches everything. It always ends in a separator so that it
	// filters by directory containment.
	Pattern string
}

// NewListFilter derives a filter from a base path of the form
// provider[/dir/...]. An empty base path yields the zero filter.
func NewListFilter(basePath string) ListFilter {
	if basePath == "" {
		return ListFilter{}
	}

	basePath = strings.TrimPrefix(basePath, "/")

	i := strings.Index(basePath, "/")
	if i < 0 {
		return ListFilter{Provider: basePath}
	}

	pattern := basePath[i:]
	if !strings.HasSuffix(pattern, "/") {
		pattern += "/"
	}

	return ListFilter{Provider: basePath[:i], Pattern: pattern}
}

// MatchStorage reports whether the named provider should be listed.
func (f ListFilter) MatchStorage(name string) bool {
	return f.Provider == "" || f.Provider == name
}

// MatchFile reports whether a file's materialized path passes the filter.
func (f ListFilter) MatchFile(materializedPath string) bool {
	return remotepath.Match(f.Pattern, materializedPath)
}

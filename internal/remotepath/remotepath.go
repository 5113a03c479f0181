// Package remotepath implements normalization, storage-provider splitting,
// and wildcard matching for OSF remote paths. All functions are pure; the
// provider whitelist is carried explicitly in a Resolver so nothing in this
// package reads the environment.
package remotepath

import (
	"path"
	"strings"
)

// DefaultProvider is the storage provider assumed when a path carries no
// recognized provider prefix.
const DefaultProvider = "osfstorage"

// DefaultKnownProviders is the built-in provider whitelist. The order
// matters: Split consumes the first entry that prefixes the path.
var DefaultKnownProviders = []string{"osfstorage", "github", "figshare", "googledrive"}

// Normalize collapses redundant separators and "."/".." segments and strips
// one leading separator. Remote paths are always provider-relative, so the
// result never begins with "/". Normalize is idempotent.
func Normalize(p string) string {
	if p == "" {
		return ""
	}

	p = path.Clean(p)
	if p == "." {
		return ""
	}

	return strings.TrimPrefix(p, "/")
}

// Resolver splits remote paths into a provider name and a provider-relative
// path against a fixed whitelist. Build one at startup from configuration;
// the whitelist is read once and never rebound.
type Resolver struct {
	Default string
	Known   []string
}

// NewResolver returns a Resolver for the given whitelist. A nil or empty
// whitelist falls back to the four built-in provider names.
func NewResolver(known []string) Resolver {
	if len(known) == 0 {
		known = DefaultKnownProviders
	}

	return Resolver{Default: DefaultProvider, Known: known}
}

// Split extracts the storage provider name from a remote path. When the path
// begins with a known provider name followed by a separator, that prefix is
// consumed and the remainder returned. Otherwise the default provider is
// returned and the path is left untouched apart from normalization.
//
// Move targets disable normalization so that a trailing separator survives
// the split; everything else normalizes first.
func (r Resolver) Split(p string, normalize bool) (provider, rest string) {
	if normalize {
		p = Normalize(p)
	}

	for _, known := range r.Known {
		if strings.HasPrefix(p, known+"/") {
			return known, p[len(known)+1:]
		}
	}

	return r.Default, p
}

// Match reports whether a candidate path matches a wildcard pattern.
//
// Both pattern and candidate are split into "/"-delimited segments; a
// trailing empty segment (from a trailing separator) is dropped on each
// side. Segments pair up positionally and the shorter list bounds the
// comparison, so a pattern with fewer segments than the candidate matches as
// a directory-containment filter, and a pattern with more segments than the
// candidate also matches as long as the overlapping prefix does. The empty
// pattern matches everything.
//
// Within a segment, "%" acts as a wildcard at either end: "text%" is a
// prefix match, "%text" a suffix match, "%text%" a substring match, and a
// bare segment requires exact equality.
func Match(pattern, candidate string) bool {
	if pattern == "" {
		return true
	}

	want := splitSegments(pattern)
	have := splitSegments(candidate)

	n := len(want)
	if len(have) < n {
		n = len(have)
	}

	for i := 0; i < n; i++ {
		if !matchSegment(want[i], have[i]) {
			return false
		}
	}

	return true
}

func splitSegments(p string) []string {
	segs := strings.Split(p, "/")
	if len(segs) > 0 && segs[len(segs)-1] == "" {
		segs = segs[:len(segs)-1]
	}

	return segs
}

func matchSegment(pattern, seg string) bool {
	switch {
	case len(pattern) >= 2 && strings.HasPrefix(pattern, "%") && strings.HasSuffix(pattern, "%"):
		return strings.Contains(seg, pattern[1:len(pattern)-1])
	case strings.HasPrefix(pattern, "%"):
		return strings.HasSuffix(seg, pattern[1:])
	case strings.HasSuffix(pattern, "%"):
		return strings.HasPrefix(seg, pattern[:len(pattern)-1])
	default:
		return pattern == seg
	}
}

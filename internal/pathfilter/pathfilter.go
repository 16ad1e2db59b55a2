// Package pathfilter decides which vault paths are never offered as notes.
package pathfilter

import (
	"path"
	"regexp"
	"strings"

	"github.com/taigrr/random-walk-note/internal/types"
)

// DefaultIgnoredPatterns are skipped in every vault: Obsidian's own config,
// its trash folder, version control and OS clutter.
var DefaultIgnoredPatterns = []string{
	".obsidian/**",
	".trash/**",
	".git/**",
	"node_modules/**",
	".DS_Store",
	"Thumbs.db",
}

// PathFilter filters vault-relative paths against ignore globs and an
// optional extension allow-list.
type PathFilter struct {
	ignored           []*regexp.Regexp
	allowedExtensions []string
}

// New creates a PathFilter from the defaults plus the given configuration.
// Patterns that fail to compile are dropped.
func New(config *types.PathFilterConfig) *PathFilter {
	patterns := DefaultIgnoredPatterns
	pf := &PathFilter{}
	if config != nil {
		patterns = append(append([]string{}, patterns...), config.IgnoredPatterns...)
		for _, ext := range config.AllowedExtensions {
			pf.allowedExtensions = append(pf.allowedExtensions, "."+strings.TrimPrefix(strings.ToLower(ext), "."))
		}
	}

	for _, p := range patterns {
		if re, err := compileGlob(p); err == nil {
			pf.ignored = append(pf.ignored, re)
		}
	}
	return pf
}

// compileGlob turns a glob into an anchored regexp. ** crosses directory
// boundaries, * and ? do not.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	expr := regexp.QuoteMeta(strings.ReplaceAll(pattern, "\\", "/"))
	expr = strings.ReplaceAll(expr, `\*\*`, ".*")
	expr = strings.ReplaceAll(expr, `\*`, "[^/]*")
	expr = strings.ReplaceAll(expr, `\?`, "[^/]")
	return regexp.Compile("^" + expr + "$")
}

func (pf *PathFilter) ignoredPath(p string) bool {
	for _, re := range pf.ignored {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

// IsAllowed reports whether a file path may be listed.
func (pf *PathFilter) IsAllowed(p string) bool {
	p = strings.ReplaceAll(p, "\\", "/")
	if pf.ignoredPath(p) {
		return false
	}
	if len(pf.allowedExtensions) == 0 {
		return true
	}

	ext := strings.ToLower(path.Ext(p))
	for _, allowed := range pf.allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// SkipDir reports whether a directory and everything below it is ignored.
func (pf *PathFilter) SkipDir(dir string) bool {
	dir = strings.TrimSuffix(strings.ReplaceAll(dir, "\\", "/"), "/")
	return pf.ignoredPath(dir + "/")
}

// FilterPaths filters a slice of paths to only include allowed ones.
func (pf *PathFilter) FilterPaths(paths []string) []string {
	var allowed []string
	for _, p := range paths {
		if pf.IsAllowed(p) {
			allowed = append(allowed, p)
		}
	}
	return allowed
}

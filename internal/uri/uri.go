// Package uri provides Obsidian URI generation.
package uri

import (
	"net/url"
	"strings"
)

// GenerateObsidianURI generates an Obsidian URI for a given note path.
// Uses the absolute path format: obsidian:///absolute/path/to/note
func GenerateObsidianURI(vaultPath, notePath string) string {
	absolutePath := vaultPath + "/" + strings.TrimPrefix(notePath, "/")
	absolutePath = strings.TrimSuffix(absolutePath, ".md")

	parts := strings.Split(absolutePath, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}

	return "obsidian:///" + strings.TrimPrefix(strings.Join(parts, "/"), "/")
}

// OpenURI builds the obsidian://open action for a file in a named vault.
// file may be a link text (note name) or a vault-relative path. newPane asks
// Obsidian to open the note in a new tab instead of the active one.
func OpenURI(vaultName, file string, newPane bool) string {
	params := []string{
		"vault=" + queryEscape(vaultName),
		"file=" + queryEscape(file),
	}
	if newPane {
		params = append(params, "paneType=tab")
	}
	return "obsidian://open?" + strings.Join(params, "&")
}

// queryEscape escapes a query value with %20 for spaces; Obsidian decodes
// parameters with decodeURIComponent, which leaves '+' untouched.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

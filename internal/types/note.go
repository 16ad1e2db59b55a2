// Package types defines the data structures shared across random-walk-note.
package types

import (
	"path"
	"strings"
)

type (
	// Note identifies a file in the vault. Notes are produced by the vault
	// listing and never modified afterwards.
	Note struct {
		Path      string `json:"path"`      // vault-relative, forward slashes
		Name      string `json:"name"`      // file name with extension
		Basename  string `json:"basename"`  // file name without extension
		Extension string `json:"extension"` // without the leading dot
	}

	// ParsedNote represents a parsed markdown note with frontmatter.
	ParsedNote struct {
		Frontmatter map[string]any `json:"frontmatter"`
		Content     string         `json:"content"`
	}
)

// NewNote builds a Note from a vault-relative path.
func NewNote(relPath string) Note {
	relPath = strings.ReplaceAll(relPath, "\\", "/")
	name := path.Base(relPath)
	ext := path.Ext(name)
	return Note{
		Path:      relPath,
		Name:      name,
		Basename:  strings.TrimSuffix(name, ext),
		Extension: strings.TrimPrefix(ext, "."),
	}
}

// ID returns the identifier used to remember that a note was already shown.
func (n Note) ID() string {
	return n.Name
}

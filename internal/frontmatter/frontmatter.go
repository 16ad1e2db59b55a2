// Package frontmatter splits YAML frontmatter from a note body and reads the
// tags declared in it.
package frontmatter

import (
	"strings"

	"github.com/taigrr/random-walk-note/internal/types"
	"gopkg.in/yaml.v3"
)

// Handler parses note frontmatter.
type Handler struct{}

// New creates a new frontmatter Handler.
func New() *Handler {
	return &Handler{}
}

// Parse parses a note's content and extracts frontmatter. Content without a
// well-formed frontmatter block is returned whole with an empty map.
func (h *Handler) Parse(content string) types.ParsedNote {
	result := types.ParsedNote{
		Frontmatter: make(map[string]any),
		Content:     content,
	}

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return result
	}

	rest := normalized[4:]
	var yamlContent, body string
	if end := strings.Index(rest, "\n---\n"); end != -1 {
		yamlContent, body = rest[:end], rest[end+5:]
	} else if strings.HasSuffix(rest, "\n---") {
		yamlContent = strings.TrimSuffix(rest, "\n---")
	} else {
		return result
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return result
	}
	if fm != nil {
		result.Frontmatter = fm
	}
	result.Content = body
	return result
}

// Tags returns the raw tag values declared under "tags" or "tag". Values may be
// a YAML list or a single string holding comma or space separated tags.
func (h *Handler) Tags(fm map[string]any) []string {
	var tags []string
	for _, key := range []string{"tags", "tag"} {
		switch v := fm[key].(type) {
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					tags = append(tags, splitTagList(s)...)
				}
			}
		case []string:
			for _, s := range v {
				tags = append(tags, splitTagList(s)...)
			}
		case string:
			tags = append(tags, splitTagList(v)...)
		}
	}
	return tags
}

func splitTagList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

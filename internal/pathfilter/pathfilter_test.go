package pathfilter

import (
	"strings"
	"testing"

	"github.com/taigrr/random-walk-note/internal/types"
)

func TestPathFilter_AllowsVaultFiles(t *testing.T) {
	filter := New(nil)

	tests := []string{
		"notes/test.md",
		"test.markdown",
		"attachments/diagram.png",
		"Archive/old.md",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if !filter.IsAllowed(path) {
				t.Errorf("IsAllowed(%q) = false, want true", path)
			}
		})
	}
}

func TestPathFilter_BlocksDefaultPatterns(t *testing.T) {
	filter := New(nil)

	tests := []string{
		".obsidian/app.json",
		".obsidian/plugins/random-walk-note/data.json",
		".trash/deleted.md",
		".git/config",
		"node_modules/package/index.js",
		".DS_Store",
		"Thumbs.db",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if filter.IsAllowed(path) {
				t.Errorf("IsAllowed(%q) = true, want false", path)
			}
		})
	}
}

func TestPathFilter_AllowedExtensions(t *testing.T) {
	filter := New(&types.PathFilterConfig{
		AllowedExtensions: []string{"md", ".TXT"},
	})

	tests := []struct {
		path string
		want bool
	}{
		{"notes/a.md", true},
		{"notes/A.MD", true},
		{"readme.txt", true},
		{"image.png", false},
		{".obsidian/x.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := filter.IsAllowed(tt.path); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathFilter_RegexSpecialCharacters(t *testing.T) {
	filter := New(nil)

	tests := []struct {
		name string
		path string
	}{
		{"dots in filenames", "file.name.md"},
		{"parentheses in paths", "notes/(archived)/old.md"},
		{"square brackets", "notes/[2024]/january.md"},
		{"curly braces", "templates/{daily}.md"},
		{"plus signs", "C++/notes.md"},
		{"question mark", "FAQ?.md"},
		{"asterisk in filename", "important*.md"},
		{"dollar sign", "price$100.md"},
		{"backslash Windows", "folder\\subfolder\\note.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !filter.IsAllowed(tt.path) {
				t.Errorf("IsAllowed(%q) = false, want true", tt.path)
			}
		})
	}
}

func TestPathFilter_CustomIgnoredPatterns(t *testing.T) {
	t.Run("asterisk glob matches", func(t *testing.T) {
		filter := New(&types.PathFilterConfig{
			IgnoredPatterns: []string{"temp*/**"},
		})

		tests := []struct {
			path string
			want bool
		}{
			{"temp/file.md", false},
			{"temp1/file.md", false},
			{"temporary/file.md", false},
			{"atemp/file.md", true},
		}

		for _, tt := range tests {
			if got := filter.IsAllowed(tt.path); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.path, got, tt.want)
			}
		}
	})

	t.Run("double asterisk matches nested", func(t *testing.T) {
		filter := New(&types.PathFilterConfig{
			IgnoredPatterns: []string{"templates/**"},
		})

		tests := []struct {
			path string
			want bool
		}{
			{"templates/daily.md", false},
			{"templates/2024/jan/note.md", false},
			{"other/templates/note.md", true},
		}

		for _, tt := range tests {
			if got := filter.IsAllowed(tt.path); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.path, got, tt.want)
			}
		}
	})

	t.Run("custom pattern with brackets", func(t *testing.T) {
		filter := New(&types.PathFilterConfig{
			IgnoredPatterns: []string{"[trash]/**"},
		})

		if filter.IsAllowed("[trash]/deleted.md") {
			t.Error("IsAllowed([trash]/deleted.md) = true, want false")
		}
		if !filter.IsAllowed("trash/deleted.md") {
			t.Error("IsAllowed(trash/deleted.md) = false, want true")
		}
	})

	t.Run("defaults survive custom config", func(t *testing.T) {
		filter := New(&types.PathFilterConfig{
			IgnoredPatterns: []string{"drafts/**"},
		})
		if filter.IsAllowed(".obsidian/app.json") {
			t.Error("default pattern lost when custom patterns are configured")
		}
	})
}

func TestPathFilter_SkipDir(t *testing.T) {
	filter := New(&types.PathFilterConfig{
		IgnoredPatterns: []string{"templates/**"},
	})

	tests := []struct {
		dir  string
		want bool
	}{
		{".obsidian", true},
		{".git/", true},
		{"templates", true},
		{"notes", false},
		{"notes/templates", false},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			if got := filter.SkipDir(tt.dir); got != tt.want {
				t.Errorf("SkipDir(%q) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestPathFilter_FilterPaths(t *testing.T) {
	filter := New(nil)
	paths := []string{
		"notes/valid.md",
		".obsidian/config.json",
		"archive/old.md",
		".git/HEAD",
	}

	got := filter.FilterPaths(paths)
	want := []string{"notes/valid.md", "archive/old.md"}

	if len(got) != len(want) {
		t.Fatalf("FilterPaths() returned %d items, want %d", len(got), len(want))
	}
	for i, path := range got {
		if path != want[i] {
			t.Errorf("FilterPaths()[%d] = %q, want %q", i, path, want[i])
		}
	}
}

func TestPathFilter_EdgeCases(t *testing.T) {
	filter := New(nil)

	t.Run("empty path", func(t *testing.T) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("IsAllowed(\"\") panicked: %v", r)
			}
		}()
		filter.IsAllowed("")
	})

	t.Run("very long paths", func(t *testing.T) {
		var longPath strings.Builder
		for range 100 {
			longPath.WriteString("a/")
		}
		longPath.WriteString("note.md")

		if !filter.IsAllowed(longPath.String()) {
			t.Error("IsAllowed(longPath) = false, want true")
		}
	})

	t.Run("unicode characters", func(t *testing.T) {
		for _, path := range []string{"notes/日本語.md", "émojis/🎉.md", "中文/笔记.md"} {
			if !filter.IsAllowed(path) {
				t.Errorf("IsAllowed(%q) = false, want true", path)
			}
		}
	})
}

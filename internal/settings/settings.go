// Package settings holds the user's random walk preferences and persists them
// in the plugin data file inside the vault.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PluginID names the plugin directory under .obsidian/plugins.
const PluginID = "random-walk-note"

var tagPattern = regexp.MustCompile(`^#?[^\s#]+$`)

// Settings are the user preferences. All four fields are always present.
type Settings struct {
	OpenInNewLeaf    bool   `json:"openInNewLeaf" yaml:"open_in_new_leaf"`
	EnableRibbonIcon bool   `json:"enableRibbonIcon" yaml:"enable_ribbon_icon"`
	ExcludedFolders  string `json:"excludedFolders" yaml:"excluded_folders"`
	SelectedTag      string `json:"selectedTag" yaml:"selected_tag"`
}

// Default returns the settings used on first run.
func Default() Settings {
	return Settings{
		OpenInNewLeaf:    true,
		EnableRibbonIcon: true,
	}
}

// Validate validates the settings.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SelectedTag, validation.Match(tagPattern).Error("must be a single tag without spaces")),
	)
}

// ExcludedFolderList splits ExcludedFolders on commas, trimming whitespace and
// dropping empty entries.
func (s Settings) ExcludedFolderList() []string {
	var out []string
	for _, f := range strings.Split(s.ExcludedFolders, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Store reads and writes settings as JSON.
type Store struct {
	path string
}

// NewStore returns a Store for the plugin data file of the vault at vaultPath.
func NewStore(vaultPath string) *Store {
	return &Store{path: filepath.Join(vaultPath, ".obsidian", "plugins", PluginID, "data.json")}
}

// NewFileStore returns a Store backed by an arbitrary file.
func NewFileStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved settings. A missing or null file yields the
// defaults; fields absent from the file keep their default values.
func (s *Store) Load() (Settings, error) {
	loaded := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return loaded, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, &loaded); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}
	return loaded, nil
}

// Save writes the full settings object.
func (s *Store) Save(settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", s.path, err)
	}
	return nil
}

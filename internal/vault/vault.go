// Package vault lists and reads the files of an Obsidian vault on disk.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taigrr/random-walk-note/internal/frontmatter"
	"github.com/taigrr/random-walk-note/internal/pathfilter"
	"github.com/taigrr/random-walk-note/internal/types"
)

// Service provides read access to the vault.
type Service struct {
	vaultPath          string
	pathFilter         *pathfilter.PathFilter
	frontmatterHandler *frontmatter.Handler
}

// New creates a vault Service rooted at vaultPath.
func New(vaultPath string, pf *pathfilter.PathFilter, fh *frontmatter.Handler) *Service {
	absPath, _ := filepath.Abs(vaultPath)
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	if fh == nil {
		fh = frontmatter.New()
	}
	return &Service{
		vaultPath:          absPath,
		pathFilter:         pf,
		frontmatterHandler: fh,
	}
}

// Path returns the absolute vault path.
func (s *Service) Path() string {
	return s.vaultPath
}

// Name returns the vault name Obsidian knows the vault by: its directory name.
func (s *Service) Name() string {
	return filepath.Base(s.vaultPath)
}

// ResolvePath resolves a relative path within the vault and validates it.
func (s *Service) ResolvePath(relativePath string) (string, error) {
	normalizedPath := strings.TrimPrefix(strings.TrimSpace(relativePath), "/")

	absPath, err := filepath.Abs(filepath.Join(s.vaultPath, normalizedPath))
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(s.vaultPath, absPath)
	if err != nil {
		return "", err
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}

	return absPath, nil
}

// ReadNote reads and parses a note from the vault.
func (s *Service) ReadNote(path string) (types.ParsedNote, error) {
	fullPath, err := s.ResolvePath(path)
	if err != nil {
		return types.ParsedNote{}, err
	}

	if !s.pathFilter.IsAllowed(path) {
		return types.ParsedNote{}, fmt.Errorf("access denied: %s", path)
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.ParsedNote{}, fmt.Errorf("file not found: %s", path)
		}
		if errors.Is(err, fs.ErrPermission) {
			return types.ParsedNote{}, fmt.Errorf("permission denied: %s", path)
		}
		return types.ParsedNote{}, fmt.Errorf("failed to read file: %s - %w", path, err)
	}

	return s.frontmatterHandler.Parse(string(content)), nil
}

// Notes returns every listable file in the vault, sorted by path. Files of
// any extension are returned; callers decide which types count as notes.
func (s *Service) Notes(ctx context.Context) ([]types.Note, error) {
	var notes []types.Note
	err := filepath.WalkDir(s.vaultPath, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			if fullPath == s.vaultPath {
				return err
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if fullPath == s.vaultPath {
			return nil
		}

		relPath, err := filepath.Rel(s.vaultPath, fullPath)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || s.pathFilter.SkipDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !s.pathFilter.IsAllowed(relPath) {
			return nil
		}

		notes = append(notes, types.NewNote(relPath))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list vault %s: %w", s.vaultPath, err)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Path < notes[j].Path
	})
	return notes, nil
}

// MarkdownPaths returns the vault-relative paths of all .md files.
func (s *Service) MarkdownPaths(ctx context.Context) ([]string, error) {
	notes, err := s.Notes(ctx)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, n := range notes {
		if n.Extension == "md" {
			paths = append(paths, n.Path)
		}
	}
	return paths, nil
}

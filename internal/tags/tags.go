// Package tags indexes the tags of a vault: frontmatter tags and inline #tags.
package tags

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/taigrr/random-walk-note/internal/frontmatter"
	"github.com/taigrr/random-walk-note/internal/types"
)

// Inline tag pattern: #tag preceded by start of line or whitespace.
var inlineTagPattern = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_/-]+)`)

// Source is the part of the vault the index reads from.
type Source interface {
	MarkdownPaths(ctx context.Context) ([]string, error)
	ReadNote(path string) (types.ParsedNote, error)
}

// Index maps normalized tags to the notes carrying them. The map is built
// lazily on first use and kept until Invalidate is called.
type Index struct {
	source      Source
	frontmatter *frontmatter.Handler
	logger      *slog.Logger

	mu    sync.Mutex
	files map[string][]types.Note
	notes int
}

// New creates a tag Index over source.
func New(source Source, fh *frontmatter.Handler, logger *slog.Logger) *Index {
	if fh == nil {
		fh = frontmatter.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Index{source: source, frontmatter: fh, logger: logger}
}

// Normalize returns the canonical form of a tag: lowercase with a leading #.
func Normalize(tag string) string {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return ""
	}
	return "#" + strings.ToLower(tag)
}

// Extract returns the normalized, de-duplicated, sorted tags of a parsed note.
func (idx *Index) Extract(note types.ParsedNote) []string {
	set := make(map[string]struct{})
	for _, t := range idx.frontmatter.Tags(note.Frontmatter) {
		if n := Normalize(t); n != "" {
			set[n] = struct{}{}
		}
	}
	for _, m := range inlineTagPattern.FindAllStringSubmatch(note.Content, -1) {
		if n := Normalize(m[1]); n != "" {
			set[n] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Files returns the notes carrying tag. The tag may be given with or without
// its leading #; matching is case-insensitive. Unknown tags yield no notes.
func (idx *Index) Files(ctx context.Context, tag string) ([]types.Note, error) {
	files, _, err := idx.load(ctx)
	if err != nil {
		return nil, err
	}
	return files[Normalize(tag)], nil
}

// All lists every tag with its note count, sorted by tag.
func (idx *Index) All(ctx context.Context) ([]types.TagInfo, int, error) {
	files, notes, err := idx.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]types.TagInfo, 0, len(files))
	for tag, tagged := range files {
		infos = append(infos, types.TagInfo{Tag: tag, Count: len(tagged)})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Tag < infos[j].Tag
	})
	return infos, notes, nil
}

// Invalidate drops the cached map; the next lookup rebuilds it.
func (idx *Index) Invalidate() {
	idx.mu.Lock()
	idx.files = nil
	idx.mu.Unlock()
}

func (idx *Index) load(ctx context.Context) (map[string][]types.Note, int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.files != nil {
		return idx.files, idx.notes, nil
	}

	files, notes, err := idx.build(ctx)
	if err != nil {
		return nil, 0, err
	}
	idx.files, idx.notes = files, notes
	return files, notes, nil
}

func (idx *Index) build(ctx context.Context) (map[string][]types.Note, int, error) {
	paths, err := idx.source.MarkdownPaths(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes for tag index: %w", err)
	}

	type tagged struct {
		path string
		tags []string
	}

	numWorkers := max(min(runtime.NumCPU(), len(paths)), 1)
	pathCh := make(chan string, len(paths))
	resultsCh := make(chan tagged, len(paths))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for p := range pathCh {
				if ctx.Err() != nil {
					continue
				}
				note, err := idx.source.ReadNote(p)
				if err != nil {
					idx.logger.Debug("tag index: skipping note",
						slog.String("path", p),
						slog.String("error", err.Error()))
					continue
				}
				if t := idx.Extract(note); len(t) > 0 {
					resultsCh <- tagged{path: p, tags: t}
				}
			}
		})
	}

	for _, p := range paths {
		pathCh <- p
	}
	close(pathCh)

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	files := make(map[string][]types.Note)
	for r := range resultsCh {
		for _, t := range r.tags {
			files[t] = append(files[t], types.NewNote(r.path))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	for _, notes := range files {
		sort.Slice(notes, func(i, j int) bool {
			return notes[i].Path < notes[j].Path
		})
	}

	idx.logger.Debug("tag index built",
		slog.Int("notes", len(paths)),
		slog.Int("tags", len(files)))
	return files, len(paths), nil
}

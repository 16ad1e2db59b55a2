// Package picker chooses which note to open next on a random walk through a
// vault, avoiding repeats until every candidate has been shown once.
package picker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taigrr/random-walk-note/internal/settings"
	"github.com/taigrr/random-walk-note/internal/types"
)

const (
	// Retries is how many extra draws are made when a pick was already shown.
	Retries = 3

	NoNotesMessage       = "Can't open note. No markdown files available to open."
	CycleCompleteMessage = "Review cycle complete."

	noticeDuration = 5 * time.Second
)

// ErrNoNotes is returned when filtering leaves nothing to open.
var ErrNoNotes = errors.New("no markdown files available to open")

// Host supplies the services the picker needs from its environment.
type Host interface {
	// ListNotes returns every file in the vault.
	ListNotes(ctx context.Context) ([]types.Note, error)
	// TaggedNotes returns the notes associated with tag.
	TaggedNotes(ctx context.Context, tag string) ([]types.Note, error)
	// OpenLink opens the note named by linkText, in a new pane if newLeaf.
	OpenLink(ctx context.Context, linkText string, newLeaf bool) error
	// Notify shows a transient notice. A zero duration means the default.
	Notify(message string, duration time.Duration)
}

// Option configures a Picker.
type Option func(*Picker)

// WithIntn sets the function returning a uniform random index in [0, n).
func WithIntn(intn func(n int) int) Option {
	return func(p *Picker) {
		p.intn = intn
	}
}

// WithSeed makes picks reproducible.
func WithSeed(seed uint64) Option {
	return func(p *Picker) {
		p.intn = rand.New(rand.NewPCG(seed, seed)).IntN
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Picker) {
		p.logger = logger
	}
}

// Picker selects notes and remembers which were shown in the current cycle.
// A cycle ends when every candidate has been shown; the record then resets.
type Picker struct {
	host   Host
	intn   func(n int) int
	logger *slog.Logger

	mu    sync.Mutex
	shown []string
}

// New creates a Picker backed by host.
func New(host Host, opts ...Option) *Picker {
	p := &Picker{
		host:   host,
		intn:   rand.IntN,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FilterMarkdown keeps only markdown notes.
func FilterMarkdown(notes []types.Note) []types.Note {
	var out []types.Note
	for _, n := range notes {
		if n.Extension == "md" {
			out = append(out, n)
		}
	}
	return out
}

// FilterExcludedFolders drops notes whose path contains any of the excluded
// strings. This is a substring test on the whole path, not a folder match.
func FilterExcludedFolders(notes []types.Note, excluded []string) []types.Note {
	if len(excluded) == 0 {
		return notes
	}
	var out []types.Note
	for _, n := range notes {
		if !slices.ContainsFunc(excluded, func(folder string) bool {
			return strings.Contains(n.Path, folder)
		}) {
			out = append(out, n)
		}
	}
	return out
}

func (p *Picker) filterTag(ctx context.Context, notes []types.Note, tag string) ([]types.Note, error) {
	if tag == "" {
		return notes, nil
	}

	tagged, err := p.host.TaggedNotes(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tag %s: %w", tag, err)
	}

	var out []types.Note
	for _, n := range notes {
		if slices.ContainsFunc(tagged, func(t types.Note) bool { return t.Path == n.Path }) {
			out = append(out, n)
		}
	}
	return out, nil
}

// SelectNext filters candidates and picks the next note to show. A pick that
// was already shown is redrawn up to Retries times and then accepted anyway.
func (p *Picker) SelectNext(ctx context.Context, candidates []types.Note, excluded []string, tag string) (types.Note, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	filtered := FilterExcludedFolders(FilterMarkdown(candidates), excluded)
	filtered, err := p.filterTag(ctx, filtered, tag)
	if err != nil {
		return types.Note{}, err
	}

	if len(filtered) == 0 {
		p.host.Notify(NoNotesMessage, noticeDuration)
		return types.Note{}, ErrNoNotes
	}

	note := filtered[p.intn(len(filtered))]
	for i := 0; i < Retries && slices.Contains(p.shown, note.ID()); i++ {
		note = filtered[p.intn(len(filtered))]
	}

	if slices.Contains(p.shown, note.ID()) {
		p.host.Notify("Already: "+note.Name, 0)
	} else {
		p.shown = append(p.shown, note.ID())
	}

	// Also resets a record carried over from a larger candidate list.
	if len(p.shown) >= len(filtered) {
		p.shown = nil
		p.host.Notify(CycleCompleteMessage, noticeDuration)
		p.logger.Info("review cycle complete", slog.Int("candidates", len(filtered)))
	}

	p.logger.Debug("note selected",
		slog.String("path", note.Path),
		slog.Int("candidates", len(filtered)),
		slog.Int("shown", len(p.shown)))
	return note, nil
}

// OpenRandomNote lists the vault, selects the next note under s and asks the
// host to open it.
func (p *Picker) OpenRandomNote(ctx context.Context, s settings.Settings) (types.Note, error) {
	notes, err := p.host.ListNotes(ctx)
	if err != nil {
		return types.Note{}, fmt.Errorf("failed to list vault: %w", err)
	}

	note, err := p.SelectNext(ctx, notes, s.ExcludedFolderList(), s.SelectedTag)
	if err != nil {
		return types.Note{}, err
	}

	p.host.Notify(fmt.Sprintf("Open: %s; Count: %d", note.Name, p.ShownCount()), 0)
	if err := p.host.OpenLink(ctx, note.Basename, s.OpenInNewLeaf); err != nil {
		return note, fmt.Errorf("failed to open %s: %w", note.Path, err)
	}
	return note, nil
}

// Shown returns the identifiers shown in the current cycle, oldest first.
func (p *Picker) Shown() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.shown)
}

// ShownCount returns how many notes were shown in the current cycle.
func (p *Picker) ShownCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.shown)
}

// Reset starts a new cycle.
func (p *Picker) Reset() {
	p.mu.Lock()
	p.shown = nil
	p.mu.Unlock()
}

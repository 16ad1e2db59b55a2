// Package host binds the vault, the tag index, the URI launcher and a notice
// sink into the services the picker depends on.
package host

import (
	"context"
	"time"

	"github.com/taigrr/random-walk-note/internal/tags"
	"github.com/taigrr/random-walk-note/internal/types"
	"github.com/taigrr/random-walk-note/internal/uri"
	"github.com/taigrr/random-walk-note/internal/vault"
)

// URIOpener opens an obsidian:// URI.
type URIOpener interface {
	Open(ctx context.Context, uri string) error
}

// Notifier shows notices.
type Notifier interface {
	Notify(message string, duration time.Duration)
}

// Local serves a vault on the local disk.
type Local struct {
	vault    *vault.Service
	tags     *tags.Index
	opener   URIOpener
	notifier Notifier
}

// New creates a Local host.
func New(v *vault.Service, idx *tags.Index, opener URIOpener, notifier Notifier) *Local {
	return &Local{vault: v, tags: idx, opener: opener, notifier: notifier}
}

// ListNotes returns every file in the vault.
func (h *Local) ListNotes(ctx context.Context) ([]types.Note, error) {
	return h.vault.Notes(ctx)
}

// TaggedNotes returns the notes carrying tag.
func (h *Local) TaggedNotes(ctx context.Context, tag string) ([]types.Note, error) {
	return h.tags.Files(ctx, tag)
}

// OpenLink opens linkText in Obsidian.
func (h *Local) OpenLink(ctx context.Context, linkText string, newLeaf bool) error {
	return h.opener.Open(ctx, uri.OpenURI(h.vault.Name(), linkText, newLeaf))
}

// Notify forwards a notice.
func (h *Local) Notify(message string, duration time.Duration) {
	h.notifier.Notify(message, duration)
}

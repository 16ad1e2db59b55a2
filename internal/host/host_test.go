package host

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/taigrr/random-walk-note/internal/notice"
	"github.com/taigrr/random-walk-note/internal/picker"
	"github.com/taigrr/random-walk-note/internal/settings"
	"github.com/taigrr/random-walk-note/internal/tags"
	"github.com/taigrr/random-walk-note/internal/vault"
)

type recordingOpener struct {
	uris []string
}

func (o *recordingOpener) Open(ctx context.Context, uri string) error {
	o.uris = append(o.uris, uri)
	return nil
}

func setupVault(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "vault")
	files := map[string]string{
		"Archive/old.md": "---\ntags: [review]\n---\nold",
		"Notes/new.md":   "new #review",
		"Notes/todo.md":  "todo",
		"image.png":      "png",
	}
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLocal_OpenRandomNote(t *testing.T) {
	dir := setupVault(t)
	v := vault.New(dir, nil, nil)
	opener := &recordingOpener{}
	rec := notice.NewRecorder()
	h := New(v, tags.New(v, nil, nil), opener, rec)
	p := picker.New(h, picker.WithSeed(3))

	s := settings.Settings{OpenInNewLeaf: true, ExcludedFolders: "Archive", SelectedTag: "#review"}
	note, err := p.OpenRandomNote(context.Background(), s)
	if err != nil {
		t.Fatalf("OpenRandomNote() error = %v", err)
	}
	if note.Path != "Notes/new.md" {
		t.Errorf("opened %s, want Notes/new.md", note.Path)
	}

	want := []string{"obsidian://open?vault=vault&file=new&paneType=tab"}
	if !slices.Equal(opener.uris, want) {
		t.Errorf("uris = %v, want %v", opener.uris, want)
	}
	if got := rec.Drain(); !slices.Equal(got, []string{picker.CycleCompleteMessage, "Open: new.md; Count: 0"}) {
		t.Errorf("notices = %v", got)
	}
}

func TestLocal_WalkWholeVault(t *testing.T) {
	dir := setupVault(t)
	v := vault.New(dir, nil, nil)
	opener := &recordingOpener{}
	h := New(v, tags.New(v, nil, nil), opener, notice.NewRecorder())

	next := 0
	p := picker.New(h, picker.WithIntn(func(n int) int {
		i := next % n
		next++
		return i
	}))

	s := settings.Settings{}
	for range 3 {
		if _, err := p.OpenRandomNote(context.Background(), s); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{
		"obsidian://open?vault=vault&file=old",
		"obsidian://open?vault=vault&file=new",
		"obsidian://open?vault=vault&file=todo",
	}
	if !slices.Equal(opener.uris, want) {
		t.Errorf("uris = %v, want %v", opener.uris, want)
	}
	if p.ShownCount() != 0 {
		t.Errorf("ShownCount() = %d, want 0 after full cycle", p.ShownCount())
	}
}

func TestLocal_NoNotes(t *testing.T) {
	dir := setupVault(t)
	v := vault.New(dir, nil, nil)
	opener := &recordingOpener{}
	rec := notice.NewRecorder()
	p := picker.New(New(v, tags.New(v, nil, nil), opener, rec))

	_, err := p.OpenRandomNote(context.Background(), settings.Settings{SelectedTag: "#unused"})
	if !errors.Is(err, picker.ErrNoNotes) {
		t.Fatalf("error = %v, want ErrNoNotes", err)
	}
	if len(opener.uris) != 0 {
		t.Errorf("uris = %v, want none", opener.uris)
	}
	if got := rec.Drain(); !slices.Equal(got, []string{picker.NoNotesMessage}) {
		t.Errorf("notices = %v", got)
	}
}

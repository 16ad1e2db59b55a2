package notice

import (
	"bytes"
	"slices"
	"testing"
	"time"
)

func TestWriter_Notify(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)

	w.Notify("Open: a.md; Count: 1", 0)
	w.Notify("Review cycle complete.", 5*time.Second)

	want := "Open: a.md; Count: 1\nReview cycle complete.\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRecorder_Drain(t *testing.T) {
	r := NewRecorder()
	r.Notify("one", 0)
	r.Notify("two", time.Second)

	if got := r.Drain(); !slices.Equal(got, []string{"one", "two"}) {
		t.Errorf("Drain() = %v", got)
	}
	if got := r.Drain(); len(got) != 0 {
		t.Errorf("second Drain() = %v, want empty", got)
	}
}

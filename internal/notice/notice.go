// Package notice delivers short user-facing messages.
package notice

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Notice is a transient message. A zero Duration means the default.
type Notice struct {
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
}

// Writer prints notices, one per line.
type Writer struct {
	w      io.Writer
	logger *slog.Logger
	mu     sync.Mutex
}

// NewWriter creates a Writer. logger may be nil.
func NewWriter(w io.Writer, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{w: w, logger: logger}
}

// Notify prints message.
func (w *Writer) Notify(message string, duration time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.w, message)
	w.logger.Debug("notice", slog.String("message", message), slog.Duration("duration", duration))
}

// Recorder keeps notices until they are drained.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records message.
func (r *Recorder) Notify(message string, duration time.Duration) {
	r.mu.Lock()
	r.notices = append(r.notices, Notice{Message: message, Duration: duration})
	r.mu.Unlock()
}

// Drain returns the recorded messages and forgets them.
func (r *Recorder) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Message)
	}
	r.notices = nil
	return out
}

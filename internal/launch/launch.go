// Package launch hands obsidian:// URIs to the operating system.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"runtime"
)

// Runner executes name with args.
type Runner func(ctx context.Context, name string, args ...string) error

// Launcher opens URIs with a platform command, or prints them when disabled.
type Launcher struct {
	command  []string
	disabled bool
	out      io.Writer
	run      Runner
	logger   *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithCommand replaces the platform opener. The URI is appended as the last
// argument.
func WithCommand(command ...string) Option {
	return func(l *Launcher) {
		if len(command) > 0 {
			l.command = command
		}
	}
}

// Disabled makes Open print the URI to out instead of launching anything.
func Disabled(out io.Writer) Option {
	return func(l *Launcher) {
		l.disabled = true
		l.out = out
	}
}

// WithRunner replaces process execution.
func WithRunner(run Runner) Option {
	return func(l *Launcher) {
		l.run = run
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// New creates a Launcher for the current platform.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		command: DefaultCommand(runtime.GOOS),
		run:     execRun,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultCommand returns the URL opener for goos.
func DefaultCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}
	default:
		return []string{"xdg-open"}
	}
}

// Open launches uri.
func (l *Launcher) Open(ctx context.Context, uri string) error {
	if l.disabled {
		if l.out == nil {
			return nil
		}
		_, err := fmt.Fprintln(l.out, uri)
		return err
	}

	if len(l.command) == 0 {
		return errors.New("no launch command configured")
	}

	args := append(append([]string{}, l.command[1:]...), uri)
	l.logger.Debug("launching", slog.String("command", l.command[0]), slog.String("uri", uri))
	if err := l.run(ctx, l.command[0], args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", l.command[0], err)
	}
	return nil
}

func execRun(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

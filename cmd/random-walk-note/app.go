package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/random-walk-note/internal/config"
	"github.com/taigrr/random-walk-note/internal/frontmatter"
	"github.com/taigrr/random-walk-note/internal/host"
	"github.com/taigrr/random-walk-note/internal/launch"
	"github.com/taigrr/random-walk-note/internal/pathfilter"
	"github.com/taigrr/random-walk-note/internal/picker"
	"github.com/taigrr/random-walk-note/internal/settings"
	"github.com/taigrr/random-walk-note/internal/tags"
	"github.com/taigrr/random-walk-note/internal/types"
	"github.com/taigrr/random-walk-note/internal/vault"
)

// app holds the services shared by every command.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	vault    *vault.Service
	tags     *tags.Index
	settings *settings.Manager
	launcher *launch.Launcher
}

// newApp resolves the vault from args (default: working directory), loads
// configuration and settings. When stdoutReserved is set nothing is written
// to stdout, which belongs to the MCP transport.
func newApp(cmd *cobra.Command, args []string, stdoutReserved bool) (*app, error) {
	var vaultPath string
	if len(args) > 0 {
		vaultPath = args[0]
	} else {
		var err error
		vaultPath, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	info, err := os.Stat(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault is not a directory: %s", vaultPath)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if err := config.Load(configPath, cfg); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	pf := pathfilter.New(&types.PathFilterConfig{IgnoredPatterns: cfg.Ignore})
	fh := frontmatter.New()
	v := vault.New(vaultPath, pf, fh)

	store := settings.NewStore(v.Path())
	mgr, err := settings.Open(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	launchOpts := []launch.Option{
		launch.WithCommand(cfg.Launch.Command...),
		launch.WithLogger(logger),
	}
	noLaunch, _ := cmd.Flags().GetBool("no-launch")
	if cfg.Launch.Disabled || noLaunch {
		if stdoutReserved {
			launchOpts = append(launchOpts, launch.Disabled(nil))
		} else {
			launchOpts = append(launchOpts, launch.Disabled(cmd.OutOrStdout()))
		}
	}

	logger.Debug("vault opened",
		slog.String("vault_path", v.Path()),
		slog.String("settings_path", store.Path()))

	return &app{
		cfg:      cfg,
		logger:   logger,
		vault:    v,
		tags:     tags.New(v, fh, logger),
		settings: mgr,
		launcher: launch.New(launchOpts...),
	}, nil
}

// newPicker creates a picker whose notices go to notifier.
func (a *app) newPicker(notifier host.Notifier) *picker.Picker {
	opts := []picker.Option{picker.WithLogger(a.logger)}
	if a.cfg.Seed != 0 {
		opts = append(opts, picker.WithSeed(a.cfg.Seed))
	}
	return picker.New(host.New(a.vault, a.tags, a.launcher, notifier), opts...)
}

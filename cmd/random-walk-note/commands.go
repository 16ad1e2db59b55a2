package main

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/random-walk-note/internal/notice"
	"github.com/taigrr/random-walk-note/internal/watch"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func runWalk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args, false)
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt("count")
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	s := a.settings.Current()
	if cmd.Flags().Changed("tag") {
		s.SelectedTag, _ = cmd.Flags().GetString("tag")
	}
	if cmd.Flags().Changed("exclude") {
		s.ExcludedFolders, _ = cmd.Flags().GetString("exclude")
	}

	p := a.newPicker(notice.NewWriter(cmd.ErrOrStderr(), a.logger))
	for range count {
		if _, err := p.OpenRandomNote(cmd.Context(), s); err != nil {
			return err
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [vault-path]",
		Short: "Show or change the saved settings",
		Long: `Show the settings saved in the vault's plugin data file.
Any flag given is applied and saved before the settings are printed.`,
		Example: `random-walk-note config ~/obsidian --exclude "Archive, Templates" --tag "#review"
random-walk-note config ~/obsidian --tag ""`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConfig,
	}

	cmd.Flags().Bool("open-in-new-leaf", true, "open notes in a new tab")
	cmd.Flags().Bool("ribbon-icon", true, "offer the quick-access prompt in serve mode")
	cmd.Flags().String("exclude", "", "comma-separated folder names to skip")
	cmd.Flags().String("tag", "", "only open notes with this tag (empty: no filter)")
	return cmd
}

func runConfig(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args, false)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("open-in-new-leaf") {
		v, _ := flags.GetBool("open-in-new-leaf")
		if err := a.settings.SetOpenInNewLeaf(v); err != nil {
			return err
		}
	}
	if flags.Changed("ribbon-icon") {
		v, _ := flags.GetBool("ribbon-icon")
		if err := a.settings.SetEnableRibbonIcon(v); err != nil {
			return err
		}
	}
	if flags.Changed("exclude") {
		v, _ := flags.GetString("exclude")
		if err := a.settings.SetExcludedFolders(v); err != nil {
			return err
		}
	}
	if flags.Changed("tag") {
		v, _ := flags.GetString("tag")
		if err := a.settings.SetSelectedTag(v); err != nil {
			return err
		}
	}

	out, err := yaml.Marshal(a.settings.Current())
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags [vault-path]",
		Short: "List the tags of the vault with note counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, args, false)
			if err != nil {
				return err
			}

			infos, _, err := a.tags.All(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%d\n", info.Tag, info.Count)
			}
			return tw.Flush()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [vault-path]",
		Short: "Run as an MCP server over stdio",
		Long: `Run a Model Context Protocol server over stdio. The server keeps
one review cycle for its whole lifetime, so repeated random_walk calls
avoid notes already shown.`,
		Example: `random-walk-note serve ~/obsidian`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, args, true)
	if err != nil {
		return err
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "random-walk-note",
		Version: version,
	}, nil)
	newWalkServer(a).register(server)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := watch.Vault(gCtx, a.vault.Path(), watch.DefaultDebounce, a.logger, a.tags.Invalidate)
		if err != nil {
			// The tag index then stays as first built; picking still works.
			a.logger.Warn("vault watcher unavailable", slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		defer cancel()
		if err := server.Run(gCtx, &mcp.StdioTransport{}); err != nil {
			return fmt.Errorf("error running server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

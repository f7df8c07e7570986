package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/store"
	"github.com/mesh-intelligence/stockroom/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and search items interactively",
		Long: `Browse opens a full-screen view with a search box over the item table.
It reloads automatically when another process changes the data.

Keys: tab toggles exact/fuzzy matching, ctrl+f cycles the category,
left/right select a column, ctrl+s cycles its sort, esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Detach()

			snap, err := s.Load()
			if err != nil {
				return sysErr(fmt.Errorf("load: %w", err))
			}

			opts := tui.Options{Limit: a.listLimit(limit), Load: s.Load}
			w, err := store.NewWatcher(s.Path())
			if err != nil {
				cliLog.Warn("watcher_unavailable", slog.String("error", err.Error()))
			} else {
				defer w.Close()
				opts.Reload = w.Reload()
			}

			if err := tui.Run(snap, opts); err != nil {
				return sysErr(err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows shown (default: config list_limit)")
	return cmd
}

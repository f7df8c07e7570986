package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and an empty inventory",
		Long: `Init writes a default config.yaml when none exists and creates the data
directory and inventory document for the configured backend. Existing data
is left untouched.`,
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
			if err := s.Save(snap); err != nil {
				return sysErr(fmt.Errorf("save: %w", err))
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Stockroom initialized")
			fmt.Fprintln(w, "  config: ", paths.ConfigFile(a.configDir))
			fmt.Fprintln(w, "  backend:", a.cfg.GetString(cfgKeyBackend))
			fmt.Fprintln(w, "  data:   ", s.Path())
			return nil
		},
	}
}

// Package cli implements the stockroom command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/stockroom"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var cliLog = logging.ForComponent(logging.CompCLI)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	role      string
	user      string
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags     rootFlags
	cfg       *viper.Viper
	configDir string
	dataDir   string
	session   types.Session
}

// NewRootCmd creates the top-level "stockroom" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "stockroom",
		Short: "Local inventory catalog with search, filters, and reports",
		Long: `Stockroom keeps an inventory of items grouped into categories. Each
category defines its own fields; items are searched exactly or fuzzily,
filtered per field, sorted, grouped, charted, and imported from CSV or
Excel files.`,
		Version:           stockroom.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Shutdown()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: config data_dir or platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().StringVar(&a.flags.role, "role", "", "acting role: admin or user (default: config role)")
	root.PersistentFlags().StringVar(&a.flags.user, "user", "", "acting user name (default: config user)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCategoryCmd(a))
	root.AddCommand(newFieldCmd(a))
	root.AddCommand(newItemCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newChartCmd(a))
	root.AddCommand(newBrowseCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "stockroom:", err)
	return exitCode(err)
}

// setup loads configuration, starts logging, and builds the session.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysErr(err)
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	a.configDir = configDir

	logging.Init(logging.Config{
		LogDir: cfg.GetString(cfgKeyLogDir),
		Level:  cfg.GetString(cfgKeyLogLevel),
	})

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return sysErr(fmt.Errorf("resolve data dir: %w", err))
	}
	a.dataDir = dataDir

	roleName := a.flags.role
	if roleName == "" {
		roleName = cfg.GetString(cfgKeyRole)
	}
	role, err := types.ParseRole(roleName)
	if err != nil {
		return fmt.Errorf("%w: %q", err, roleName)
	}
	user := a.flags.user
	if user == "" {
		user = cfg.GetString(cfgKeyUser)
	}
	a.session = types.Session{User: user, Role: role}

	cliLog.Debug("command_start",
		slog.String("command", cmd.CommandPath()),
		slog.String("user", user),
		slog.String("role", string(role)),
		slog.String("data_dir", dataDir))
	return nil
}

// systemError marks failures of the environment rather than of the input.
type systemError struct{ err error }

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &systemError{err: err}
}

// exitCode maps an error to exitSysError for system failures and
// exitUserError for everything else.
func exitCode(err error) int {
	var se *systemError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

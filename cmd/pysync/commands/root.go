// Package commands implements the CLI commands for pysync.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pysync/internal/app"
	"go.trai.ch/pysync/internal/build"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// logSettings is implemented by loggers whose output can be tuned from flags.
type logSettings interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// Reconciler is the application surface the commands drive.
type Reconciler interface {
	Sync(ctx context.Context, opts app.SyncOptions) (*app.Report, error)
	Plan(ctx context.Context, opts app.SyncOptions) (*app.Report, error)
}

// CLI represents the command line interface for pysync.
type CLI struct {
	app     Reconciler
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Reconciler, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pysync",
		Short:         "Keep a Python environment in sync with its lockfile",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("lockfile", "l", "", "Lockfile to read (default pixi.lock)")
	flags.StringP("environment", "e", "", "Lockfile environment to install (default \"default\")")
	flags.String("platform", "", "Lockfile platform to install (default: the host platform)")
	flags.StringP("prefix", "p", "", "Environment directory (default .pixi/envs/<environment>)")
	flags.String("python", "", "Interpreter path, relative to the prefix unless absolute")
	flags.String("cache-dir", "", "Wheel cache directory")
	flags.Int("concurrency", 0, "Maximum number of concurrent downloads")
	flags.String("link-mode", "", "How files are placed into the environment: hardlink or copy")
	flags.Bool("refresh", false, "Ignore cached wheels for every package")
	flags.StringSlice("refresh-package", nil, "Ignore cached wheels for a package (repeatable)")
	flags.String("log-format", LogFormatText, "Log format: text or json")
	flags.BoolP("verbose", "v", false, "Show debug output")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.configureLogger

	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error writers. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) configureLogger(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	if format != LogFormatText && format != LogFormatJSON {
		return zerr.With(domain.ErrInvalidConfig, "log_format", format)
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	if settings, ok := c.logger.(logSettings); ok {
		settings.SetJSON(format == LogFormatJSON)
		settings.SetVerbose(verbose)
	}
	return nil
}

// syncOptions collects the flags shared by sync and plan.
func syncOptions(cmd *cobra.Command) app.SyncOptions {
	flags := cmd.Flags()
	var opts app.SyncOptions
	opts.Lockfile, _ = flags.GetString("lockfile")
	opts.Environment, _ = flags.GetString("environment")
	opts.Platform, _ = flags.GetString("platform")
	opts.Prefix, _ = flags.GetString("prefix")
	opts.Python, _ = flags.GetString("python")
	opts.CacheDir, _ = flags.GetString("cache-dir")
	opts.Concurrency, _ = flags.GetInt("concurrency")
	opts.LinkMode, _ = flags.GetString("link-mode")
	opts.Refresh, _ = flags.GetBool("refresh")
	opts.RefreshPackages, _ = flags.GetStringSlice("refresh-package")
	return opts
}

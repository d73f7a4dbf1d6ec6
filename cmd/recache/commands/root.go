// Package commands implements the CLI commands for recache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/recache/internal/app"
	"go.trai.ch/recache/internal/build"
)

// CLI represents the command line interface for recache.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	globals globalFlags
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, targets []string, opts app.Options) error
	Watch(ctx context.Context, targets []string, opts app.Options) error
	Graph(ctx context.Context, w io.Writer, targets []string, opts app.Options) error
}

type globalFlags struct {
	dir     string
	policy  string
	json    bool
	verbose bool
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "recache",
		Short:         "Incremental document builds with dependency-tracked caching",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.globals.dir, "dir", "C", ".", "Run as if started in this directory")
	pf.StringVar(&c.globals.policy, "policy", "", "Override the cache policy: nocache, firstload, shallow or smart")
	pf.BoolVar(&c.globals.json, "json", false, "Write logs as JSON")
	pf.BoolVar(&c.globals.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// options turns the global flags into app options.
func (c *CLI) options() app.Options {
	return app.Options{
		Dir:     c.globals.dir,
		Policy:  c.globals.policy,
		JSON:    c.globals.json,
		Verbose: c.globals.verbose,
	}
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// Package commands implements the CLI commands for catalog.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/catalog/internal/app"
	"go.trai.ch/catalog/internal/build"
	"go.trai.ch/catalog/internal/core/domain"
)

// CLI represents the command line interface for catalog.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Load(ctx context.Context, paths []string, opts app.LoadOptions) error
	Watch(ctx context.Context, paths []string, opts app.WatchOptions) error
	Key(paths []string) domain.CacheKey
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Load and browse JSON file manifests",
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

	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newKeyCmd())
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addViewFlags registers the flags shared by every command that renders items.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "auto", "Output format: auto, text or json")
	cmd.Flags().String("folder", "", "Only show items in this folder")
	cmd.Flags().String("provider", "", "Only show items from this provider (case-insensitive)")
	cmd.Flags().BoolP("sort", "s", false, "Sort items by folder, then name")
	cmd.Flags().BoolP("verbose", "v", false, "Show debug logs and timings")
}

func viewOptions(cmd *cobra.Command) app.ViewOptions {
	format, _ := cmd.Flags().GetString("format")
	folder, _ := cmd.Flags().GetString("folder")
	provider, _ := cmd.Flags().GetString("provider")
	sortItems, _ := cmd.Flags().GetBool("sort")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return app.ViewOptions{
		Format:   format,
		Folder:   folder,
		Provider: provider,
		Sort:     sortItems,
		Verbose:  verbose,
	}
}

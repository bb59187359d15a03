package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/catalog/internal/app"
)

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [paths...]",
		Short: "Load manifests and print their items",
		Long: "Load the manifests at the given paths, or the configured ones when none are given,\n" +
			"and print their items in path order.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refetch, _ := cmd.Flags().GetBool("refetch")

			return c.app.Load(cmd.Context(), args, app.LoadOptions{
				ViewOptions: viewOptions(cmd),
				Refetch:     refetch,
			})
		},
	}
	addViewFlags(cmd)
	cmd.Flags().BoolP("refetch", "r", false, "Bypass the manifest cache and fetch again")
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key [paths...]",
		Short: "Print the cache key for a list of manifest paths",
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			key := c.app.Key(args)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key.Digest(), key.String())
		},
	}
}

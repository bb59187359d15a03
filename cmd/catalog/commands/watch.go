package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/catalog/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Print manifest items on every change until interrupted",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetDuration("interval")

			return c.app.Watch(cmd.Context(), args, app.WatchOptions{
				ViewOptions: viewOptions(cmd),
				Interval:    interval,
			})
		},
	}
	addViewFlags(cmd)
	cmd.Flags().DurationP("interval", "i", 0, "Refetch periodically at this interval (0 disables)")
	return cmd
}

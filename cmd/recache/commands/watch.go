package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "watch [documents...]",
		Short: "Build documents and rebuild them when their sources change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options()
			opts.Output = output
			return c.app.Watch(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write expanded documents below this directory")
	return cmd
}

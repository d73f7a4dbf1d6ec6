package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [documents...]",
		Short: "Build documents and print the recorded dependency graph",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Graph(cmd.Context(), cmd.OutOrStdout(), args, c.options())
		},
	}
}

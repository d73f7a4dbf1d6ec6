package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build [documents...]",
		Short: "Build documents, reusing cached results that are still valid",
		Long: "Build the given documents, or every entry configured in recache.yaml.\n" +
			"Each document is reported as built or cached.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options()
			opts.Output = output
			return c.app.Build(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write expanded documents below this directory")
	return cmd
}

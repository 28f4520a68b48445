package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type versionCmd struct {
	gitCommit string
}

func (c *versionCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build commit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			commit := c.gitCommit
			if commit == "" {
				commit = "unknown"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "echo-server %s\n", commit)
			if err != nil {
				return fmt.Errorf("printing version: %w", err)
			}
			return nil
		},
	}
}

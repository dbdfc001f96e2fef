package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/certsync/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "certsync %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:     %s\n", info.GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:      %s\n", info.BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "  go version: %s\n", info.GoVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "  platform:   %s\n", info.Platform)
			return nil
		},
	}
}

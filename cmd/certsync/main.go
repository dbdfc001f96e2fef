// main.go bootstraps certsync: it builds the root Cobra command and executes
// it with a signal-aware context.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/certsync/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	cmd := &cobra.Command{
		Use:           "certsync",
		Short:         "Materialize TLS secrets from a cluster or local snapshot",
		Long:          "certsync resolves TLS certificate/key material for named secrets from a live Kubernetes control plane or a locally materialized snapshot and persists it to a deterministic directory layout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.ApplyEnv(cmd.Flags())
			return opts.Validate()
		},
	}
	opts.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newResolveCommand(opts))
	cmd.AddCommand(newSyncCommand(opts))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

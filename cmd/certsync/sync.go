// sync.go implements the long-running mode: re-resolve on a fixed cadence
// and on debounced SIGHUP bursts.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/certsync/internal/config"
	"github.com/example/certsync/internal/logging"
	"github.com/example/certsync/internal/trigger"
)

func newSyncCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync SECRET...",
		Short: "Keep secret material on disk fresh until interrupted",
		Long:  "sync resolves the named secrets immediately, then re-resolves them every --interval and whenever a burst of SIGHUP signals quiesces for --debounce. Runs until SIGINT/SIGTERM.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New("certsync", opts.LogLevel)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			reader := newReader(log, opts)

			refresh := func() {
				results := resolveAll(ctx, reader, opts, args)
				for _, name := range args {
					res := results[name]
					log.Info("resolved", "secret", name, "valid", res.saved.Valid(), "status", res.status.String())
				}
			}
			refresh()

			// The triggers run until process exit; they are never
			// joined or stopped.
			delay := trigger.NewDelayTrigger(log, refresh, opts.Debounce, "sighup-debounce")
			trigger.NewPeriodicTrigger(log, refresh, opts.Interval, "interval-refresh")

			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			for {
				select {
				case <-hup:
					delay.Fire()
				case <-ctx.Done():
					log.Info("shutting down")
					return nil
				}
			}
		},
	}
}

// resolve.go implements one-shot resolution of named secrets.
package main

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"k8s.io/client-go/kubernetes"
	sigyaml "sigs.k8s.io/yaml"

	"github.com/example/certsync/internal/config"
	"github.com/example/certsync/internal/kube"
	"github.com/example/certsync/internal/logging"
	"github.com/example/certsync/internal/secrets"
	"github.com/example/certsync/internal/status"
)

func newResolveCommand(opts *config.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve SECRET...",
		Short: "Resolve named secrets once and write their material to disk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New("certsync", opts.LogLevel)
			if err != nil {
				return err
			}
			reader := newReader(log, opts)
			results := resolveAll(cmd.Context(), reader, opts, args)

			failed := 0
			for _, name := range args {
				res := results[name]
				if err := printResult(cmd, opts, name, res); err != nil {
					return err
				}
				if !res.saved.Valid() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d secrets could not be resolved", failed, len(args))
			}
			return nil
		},
	}
}

// newReader picks the secret source configured by the user.
func newReader(log logr.Logger, opts *config.Options) secrets.Reader {
	if opts.Source == config.SourceSnapshot {
		return secrets.NewSnapshotReader(log)
	}
	return secrets.NewClusterReader(log, func() (kubernetes.Interface, error) {
		client, err := kube.New(opts.KubeconfigPath, opts.Context)
		if err != nil {
			return nil, err
		}
		return client.Clientset, nil
	})
}

type resolution struct {
	saved  secrets.SavedSecret
	status status.Status
}

// resolveAll resolves every named secret concurrently. Readers never fail
// upward, so the group exists purely to bound concurrency.
func resolveAll(ctx context.Context, reader secrets.Reader, opts *config.Options, names []string) map[string]resolution {
	var mu sync.Mutex
	results := make(map[string]resolution, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, name := range names {
		name := name
		g.Go(func() error {
			saved := reader.Resolve(ctx, name, opts.Namespace, opts.SecretRoot)
			mu.Lock()
			results[name] = resolution{saved: saved, status: secretStatus(saved)}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func secretStatus(saved secrets.SavedSecret) status.Status {
	attrs := map[string]string{
		"secret":    saved.Name,
		"namespace": saved.Namespace,
	}
	if !saved.Valid() {
		return status.FromError(fmt.Errorf("no certificate material for %s", saved.Ident()), attrs)
	}
	attrs["cert_path"] = saved.CertPath
	if saved.KeyPath != "" {
		attrs["key_path"] = saved.KeyPath
	}
	return status.OK(attrs)
}

func printResult(cmd *cobra.Command, opts *config.Options, name string, res resolution) error {
	marker := color.GreenString("OK")
	if !res.saved.Valid() {
		marker = color.RedString("MISSING")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", marker, res.saved.Ident())

	if !opts.Detail {
		return nil
	}
	detail, err := sigyaml.Marshal(detailView(res))
	if err != nil {
		return fmt.Errorf("render detail for %s: %w", name, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(detail))
	return nil
}

// detailView flattens a resolution into a YAML-friendly shape with sorted
// payload field names (values are omitted; they are credential material).
func detailView(res resolution) map[string]any {
	fields := make([]string, 0, len(res.saved.Data))
	for field := range res.saved.Data {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return map[string]any{
		"secret":    res.saved.Name,
		"namespace": res.saved.Namespace,
		"certPath":  res.saved.CertPath,
		"keyPath":   res.saved.KeyPath,
		"fields":    fields,
		"status":    res.status.String(),
	}
}

// Package config defines the flag plumbing and runtime options shared by
// certsync commands, translating Cobra flag values and CERTSYNC_* environment
// overrides into a strongly typed struct the readers and triggers consume.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Secret sources.
const (
	SourceCluster  = "cluster"
	SourceSnapshot = "snapshot"
)

// Options holds all CLI configuration used by certsync.
type Options struct {
	KubeconfigPath string
	Context        string
	Namespace      string
	Source         string
	SecretRoot     string
	Secrets        []string
	Interval       time.Duration
	Debounce       time.Duration
	LogLevel       string
	Detail         bool
}

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		Namespace:  "default",
		Source:     SourceCluster,
		SecretRoot: ".",
		Interval:   30 * time.Second,
		Debounce:   5 * time.Second,
		LogLevel:   "info",
	}
}

// BindFlags attaches certsync flags to the given FlagSet.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.KubeconfigPath, "kubeconfig", o.KubeconfigPath, "Path to the kubeconfig file (defaults to standard loading rules)")
	fs.StringVar(&o.Context, "context", o.Context, "Kubeconfig context to use")
	fs.StringVarP(&o.Namespace, "namespace", "n", o.Namespace, "Namespace to resolve secrets from")
	fs.StringVar(&o.Source, "source", o.Source, "Secret source: cluster or snapshot")
	fs.StringVar(&o.SecretRoot, "secret-root", o.SecretRoot, "Root directory for snapshot input and materialized output")
	fs.DurationVar(&o.Interval, "interval", o.Interval, "Re-resolution cadence for the sync command")
	fs.DurationVar(&o.Debounce, "debounce", o.Debounce, "Quiescence window for debounced re-resolution")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level: debug, info, warn, or error")
	fs.BoolVar(&o.Detail, "detail", o.Detail, "Print resolved secrets as YAML")
}

// ApplyEnv overlays CERTSYNC_* environment variables onto flags the user did
// not set explicitly.
func (o *Options) ApplyEnv(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix("CERTSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		if val := v.GetString(f.Name); val != "" {
			_ = fs.Set(f.Name, val)
		}
	})
}

// Validate checks cross-flag consistency.
func (o *Options) Validate() error {
	switch o.Source {
	case SourceCluster, SourceSnapshot:
	default:
		return fmt.Errorf("unknown source %q (expected %s or %s)", o.Source, SourceCluster, SourceSnapshot)
	}
	if o.Namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if o.SecretRoot == "" {
		return fmt.Errorf("secret-root is required")
	}
	if o.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", o.Interval)
	}
	if o.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", o.Debounce)
	}
	return nil
}

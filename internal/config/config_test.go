package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestDefaultsValidate(t *testing.T) {
	if err := NewOptions().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"unknown source", func(o *Options) { o.Source = "vault" }},
		{"empty namespace", func(o *Options) { o.Namespace = "" }},
		{"empty root", func(o *Options) { o.SecretRoot = "" }},
		{"zero interval", func(o *Options) { o.Interval = 0 }},
		{"negative debounce", func(o *Options) { o.Debounce = -time.Second }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOptions()
			tc.mutate(o)
			if err := o.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestBindFlagsParses(t *testing.T) {
	o := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.BindFlags(fs)
	err := fs.Parse([]string{
		"--source=snapshot",
		"--secret-root=/var/run/certsync",
		"-n", "edge",
		"--interval=1m",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.Source != SourceSnapshot || o.Namespace != "edge" || o.SecretRoot != "/var/run/certsync" {
		t.Fatalf("flags not applied: %+v", o)
	}
	if o.Interval != time.Minute {
		t.Fatalf("interval = %s, want 1m", o.Interval)
	}
}

func TestApplyEnvRespectsExplicitFlags(t *testing.T) {
	t.Setenv("CERTSYNC_NAMESPACE", "from-env")
	t.Setenv("CERTSYNC_LOG_LEVEL", "debug")

	o := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.BindFlags(fs)
	if err := fs.Parse([]string{"-n", "explicit"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	o.ApplyEnv(fs)

	if o.Namespace != "explicit" {
		t.Fatalf("explicit flag overridden by env: %q", o.Namespace)
	}
	if o.LogLevel != "debug" {
		t.Fatalf("env override not applied: %q", o.LogLevel)
	}
}

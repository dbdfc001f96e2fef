// Package secrets resolves TLS credential material for named Kubernetes
// secrets from either a live control plane or a locally materialized
// snapshot, and persists the decoded certificate and key to a deterministic
// directory layout.
package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Field names carried by TLS secrets.
const (
	CertField = "tls.crt"
	KeyField  = "tls.key"
)

// CertPaths returns the certificate and key paths under dir.
func CertPaths(dir string) (crt, key string) {
	return filepath.Join(dir, CertField), filepath.Join(dir, KeyField)
}

// SavedSecret identifies a resolved credential. CertPath and KeyPath are only
// set for files actually written; Data holds the payload as fetched, with
// field values still base64-encoded.
type SavedSecret struct {
	Name      string
	Namespace string
	CertPath  string
	KeyPath   string
	Data      map[string]string
}

// Valid reports whether usable credential material exists: a certificate was
// persisted and a raw payload was fetched. A key without a certificate is
// never valid.
func (s SavedSecret) Valid() bool {
	return s.CertPath != "" && s.Data != nil
}

// Ident returns the human-readable identity of the secret.
func (s SavedSecret) Ident() string {
	return fmt.Sprintf("secret %s in namespace %s", s.Name, s.Namespace)
}

func (s SavedSecret) String() string {
	data := "absent"
	if s.Data != nil {
		data = "present"
	}
	return fmt.Sprintf("<SavedSecret %s.%s -- cert_path %s, key_path %s, data %s>",
		s.Name, s.Namespace, orNone(s.CertPath), orNone(s.KeyPath), data)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// Reader resolves a named secret from some source and materializes it under
// root. Resolution never fails upward: every failure path degrades to a
// SavedSecret with absent certificate fields plus a logged diagnostic.
type Reader interface {
	Resolve(ctx context.Context, name, namespace, root string) SavedSecret
}

// CheckCertFile reports whether path holds readable, non-empty certificate
// material.
func CheckCertFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

package secrets

import (
	"encoding/base64"
	"os"

	"github.com/go-logr/logr"
)

// Materializer decodes base64 certificate/key payloads and writes them under
// a target directory. It is shared by both reader variants and is safe to
// invoke repeatedly for the same target: directory creation ignores
// already-exists and rewrites with identical content are harmless.
type Materializer struct {
	log logr.Logger
}

// NewMaterializer returns a Materializer logging through log.
func NewMaterializer(log logr.Logger) Materializer {
	return Materializer{log: log.WithName("materializer")}
}

// Materialize decodes the tls.crt and tls.key fields of payload and persists
// them under dir. Malformed base64 drops the affected field; without a
// decoded certificate nothing is written at all, even when the key decoded
// cleanly. The returned SavedSecret carries whichever paths were written plus
// the original pre-decode payload.
func (m Materializer) Materialize(name, namespace, dir string, payload map[string]string) SavedSecret {
	saved := SavedSecret{Name: name, Namespace: namespace, Data: payload}
	if payload == nil {
		return saved
	}

	cert := m.decodeField(name, namespace, payload, CertField)
	key := m.decodeField(name, namespace, payload, KeyField)

	if cert == nil {
		return saved
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Error(err, "could not create secret directory", "secret", name, "namespace", namespace, "dir", dir)
		return saved
	}

	certPath, keyPath := CertPaths(dir)
	if err := os.WriteFile(certPath, cert, 0o644); err != nil {
		m.log.Error(err, "could not write certificate", "secret", name, "namespace", namespace, "path", certPath)
		return saved
	}
	saved.CertPath = certPath

	if key != nil {
		if err := os.WriteFile(keyPath, key, 0o600); err != nil {
			m.log.Error(err, "could not write key", "secret", name, "namespace", namespace, "path", keyPath)
			return saved
		}
		saved.KeyPath = keyPath
	}

	return saved
}

func (m Materializer) decodeField(name, namespace string, payload map[string]string, field string) []byte {
	encoded, ok := payload[field]
	if !ok || encoded == "" {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		m.log.Error(err, "malformed base64 in secret field", "secret", name, "namespace", namespace, "field", field)
		return nil
	}
	return decoded
}

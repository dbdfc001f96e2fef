package secrets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/example/certsync/internal/resource"
)

// SnapshotReader resolves secrets from a locally materialized snapshot: one
// multi-document YAML file per secret at <root>/<namespace>/secrets/<name>.yaml.
// Decoded material is persisted under <root>/<namespace>/secrets-decoded/<name>.
type SnapshotReader struct {
	log logr.Logger
	mat Materializer
}

// NewSnapshotReader builds a snapshot-backed reader.
func NewSnapshotReader(log logr.Logger) *SnapshotReader {
	log = log.WithName("snapshot-reader")
	return &SnapshotReader{
		log: log,
		mat: NewMaterializer(log),
	}
}

// Resolve parses the snapshot file for name and materializes its data block.
// A missing or malformed file degrades to an absent-cert SavedSecret; no
// error escapes.
func (r *SnapshotReader) Resolve(ctx context.Context, name, namespace, root string) SavedSecret {
	yamlPath := filepath.Join(root, namespace, "secrets", name+".yaml")

	captured, errCount := r.scan(name, namespace, yamlPath)

	var payload map[string]string
	if captured != nil {
		payload = stringFields(captured.Payload)
	}
	if errCount > 0 || payload == nil {
		// Degraded: keep whatever payload was captured for caller
		// inspection, but persist nothing.
		return SavedSecret{Name: name, Namespace: namespace, Data: payload}
	}

	captured.RecordReference(fmt.Sprintf("%s/%s", namespace, name))
	dir := filepath.Join(root, namespace, "secrets-decoded", name)
	return r.mat.Materialize(name, namespace, dir, payload)
}

// scan reads the document stream and captures at most one Secret data block.
// The first Secret document carrying data wins; any later data-bearing
// document is an error. The error count suppresses materialization so a
// corrupt snapshot never yields usable credentials.
func (r *SnapshotReader) scan(name, namespace, yamlPath string) (*resource.Sourced, int) {
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		r.log.Error(err, "could not read snapshot", "secret", name, "namespace", namespace, "path", yamlPath)
		return nil, 0
	}

	var captured *resource.Sourced
	errCount := 0
	docCount := 0

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			r.log.Error(err, "could not parse snapshot", "secret", name, "namespace", namespace, "path", yamlPath)
			errCount++
			break
		}
		docCount++
		source := fmt.Sprintf("%s.%d", yamlPath, docCount)

		kind, _ := doc["kind"].(string)
		if kind != "Secret" {
			r.log.Error(nil, "snapshot document is not a Secret", "secret", name, "namespace", namespace, "source", source, "kind", kind)
			errCount++
			continue
		}

		if empty(doc["metadata"]) {
			r.log.Error(nil, "snapshot Secret has no metadata", "secret", name, "namespace", namespace, "source", source)
			errCount++
			continue
		}

		data, ok := doc["data"].(map[string]any)
		if !ok {
			continue
		}
		if captured != nil {
			r.log.Error(nil, "snapshot holds multiple Secrets", "secret", name, "namespace", namespace, "source", source)
			errCount++
			continue
		}
		captured = resource.NewSourced(data, source)
	}

	return captured, errCount
}

func empty(v any) bool {
	switch typed := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(typed) == 0
	default:
		return false
	}
}

func stringFields(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

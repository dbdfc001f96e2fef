package secrets

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"sync"

	"github.com/go-logr/logr"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ConnectFunc obtains a clientset for the cluster reader. It is a constructor
// parameter so tests can substitute a fake clientset.
type ConnectFunc func() (kubernetes.Interface, error)

// ClusterReader resolves secrets from the live control plane. The connection
// is established lazily on first use; if none can be established, every
// resolution behaves as not-found.
type ClusterReader struct {
	log     logr.Logger
	mat     Materializer
	connect ConnectFunc

	once   sync.Once
	client kubernetes.Interface
}

// NewClusterReader builds a reader that connects via connect on first
// Resolve.
func NewClusterReader(log logr.Logger, connect ConnectFunc) *ClusterReader {
	log = log.WithName("cluster-reader")
	return &ClusterReader{
		log:     log,
		mat:     NewMaterializer(log),
		connect: connect,
	}
}

// Resolve fetches name from namespace and materializes it under
// <root>/<namespace>/secrets/<name>. Failures degrade to an absent-cert
// SavedSecret; no error escapes.
func (r *ClusterReader) Resolve(ctx context.Context, name, namespace, root string) SavedSecret {
	r.once.Do(func() {
		client, err := r.connect()
		if err != nil {
			r.log.Info("no cluster connection available, secrets will resolve as not found", "reason", err.Error())
			return
		}
		r.client = client
	})

	var payload map[string]string
	if r.client != nil {
		secret, err := r.client.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
		switch {
		case apierrors.IsNotFound(err):
			r.log.Info("secret not found", "secret", name, "namespace", namespace)
		case err != nil:
			r.log.Error(err, "secret could not be read", "secret", name, "namespace", namespace)
		case secret.Data != nil:
			// The API ships secret data base64-encoded on the wire;
			// client-go decodes it. Re-encode so both reader
			// variants hand the materializer one payload shape.
			payload = make(map[string]string, len(secret.Data))
			for field, value := range secret.Data {
				payload[field] = base64.StdEncoding.EncodeToString(value)
			}
		}
	}

	dir := filepath.Join(root, namespace, "secrets", name)
	return r.mat.Materialize(name, namespace, dir, payload)
}

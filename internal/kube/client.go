// Package kube constructs the Kubernetes clientset used by the cluster
// secret reader, honoring in-cluster service-account credentials when
// present and falling back to kubeconfig loading otherwise.
package kube

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// Client bundles the clientset with the configuration it was built from.
type Client struct {
	RESTConfig *rest.Config
	Clientset  kubernetes.Interface
	Namespace  string
}

// InCluster reports whether the process appears to run inside a pod.
func InCluster() bool {
	return os.Getenv("KUBERNETES_SERVICE_HOST") != ""
}

// New builds a client from the pod environment when running in-cluster, or
// from the given kubeconfig path and context otherwise. An empty path uses
// the default loading rules.
func New(kubeconfigPath, contextName string) (*Client, error) {
	if InCluster() {
		restConfig, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("build in-cluster config: %w", err)
		}
		return build(restConfig, "default")
	}

	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		expanded, err := homedir.Expand(kubeconfigPath)
		if err != nil {
			return nil, fmt.Errorf("expand kubeconfig path: %w", err)
		}
		loadingRules.Precedence = []string{filepath.Clean(expanded)}
	}

	overrides := &clientcmd.ConfigOverrides{ClusterInfo: api.Cluster{Server: ""}}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)
	namespace, _, err := clientConfig.Namespace()
	if err != nil {
		return nil, fmt.Errorf("resolve default namespace: %w", err)
	}
	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("build rest config: %w", err)
	}
	return build(restConfig, namespace)
}

func build(restConfig *rest.Config, namespace string) (*Client, error) {
	rest.SetDefaultWarningHandler(rest.NoWarnings{})

	// Aggressive defaults for snappy startup.
	restConfig.Timeout = 30 * time.Second
	restConfig.QPS = 50
	restConfig.Burst = 100

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create typed client: %w", err)
	}
	return &Client{
		RESTConfig: restConfig,
		Clientset:  clientset,
		Namespace:  namespace,
	}, nil
}

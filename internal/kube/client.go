package kube

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"
)

// kubeconfigPath picks the kubeconfig to load: the explicit flag value, else
// the first existing entry of $KUBECONFIG, else "".
func kubeconfigPath(explicit string, getenv func(string) string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	env := strings.TrimSpace(getenv("KUBECONFIG"))
	if env == "" {
		return ""
	}
	for _, p := range filepath.SplitList(env) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	// Nothing exists; keep the raw value so the load error names it.
	return env
}

// Config resolves a rest.Config from a kubeconfig file, the in-cluster
// service account, or the default loading rules, in that order.
// KUBE_CONTEXT overrides the current context of a kubeconfig file.
func Config(explicit string) (*rest.Config, error) {
	path := kubeconfigPath(explicit, os.Getenv)
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		raw, err := clientcmd.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("kubeconfig %q: %w", path, err)
		}
		overrides := &clientcmd.ConfigOverrides{}
		if ctx := strings.TrimSpace(os.Getenv("KUBE_CONTEXT")); ctx != "" {
			overrides.CurrentContext = ctx
		}
		cfg, err := clientcmd.NewDefaultClientConfig(*raw, overrides).ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("kubeconfig %q (context %q): %w", path, raw.CurrentContext, err)
		}
		klog.V(2).InfoS("Using kubeconfig", "path", path, "host", cfg.Host)
		return cfg, nil
	}

	if cfg, err := rest.InClusterConfig(); err == nil {
		klog.V(2).InfoS("Using in-cluster config", "host", cfg.Host)
		return cfg, nil
	}

	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("kubeconfig default rules: %w", err)
	}
	return cfg, nil
}

// NewClient builds a clientset for the resolved config.
func NewClient(kubeconfig string) (kubernetes.Interface, error) {
	cfg, err := Config(kubeconfig)
	if err != nil {
		return nil, err
	}
	cfg.UserAgent = "lhscores"
	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create kube client: %w", err)
	}
	return cs, nil
}

package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/klog/v2"

	"lighthouse-score-analyzer/internal/model"
)

// ConfigMap data keys.
const (
	KeySummary     = "summary.json"
	KeyStatus      = "status"
	KeyGeneratedAt = "generatedAt"
)

// maxConfigMapBytes is the API server limit on a ConfigMap's data.
const maxConfigMapBytes = 1 << 20

// Target names a ConfigMap.
type Target struct {
	Namespace string
	Name      string
}

func (t Target) String() string {
	return t.Namespace + "/" + t.Name
}

// ParseTarget parses "namespace/name"; a bare name uses the default namespace.
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	ns, name, found := strings.Cut(s, "/")
	if !found {
		ns, name = metav1.NamespaceDefault, s
	}
	if ns == "" || name == "" || strings.Contains(name, "/") {
		return Target{}, fmt.Errorf("invalid configmap %q, want NAMESPACE/NAME", s)
	}
	return Target{Namespace: ns, Name: name}, nil
}

// ConfigMap stores the summary in the target ConfigMap, creating it when it
// does not exist. Keys other than the ones written here are preserved.
func ConfigMap(ctx context.Context, client kubernetes.Interface, t Target, s *model.Summary) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if len(raw) > maxConfigMapBytes {
		return fmt.Errorf("summary is %d bytes, over the %d byte configmap limit", len(raw), maxConfigMapBytes)
	}
	data := map[string]string{
		KeySummary:     string(raw),
		KeyStatus:      s.Status,
		KeyGeneratedAt: s.GeneratedUTC,
	}

	cms := client.CoreV1().ConfigMaps(t.Namespace)
	existing, err := cms.Get(ctx, t.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      t.Name,
				Namespace: t.Namespace,
				Labels: map[string]string{
					"app.kubernetes.io/name":       "lhscores",
					"app.kubernetes.io/managed-by": "lhscores",
				},
			},
			Data: data,
		}
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("create configmap %s: %w", t, err)
		}
		klog.V(1).InfoS("Created configmap", "configmap", t.String(), "status", s.Status)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get configmap %s: %w", t, err)
	}

	if existing.Data == nil {
		existing.Data = map[string]string{}
	}
	for k, v := range data {
		existing.Data[k] = v
	}
	if _, err := cms.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update configmap %s: %w", t, err)
	}
	klog.V(1).InfoS("Updated configmap", "configmap", t.String(), "status", s.Status)
	return nil
}

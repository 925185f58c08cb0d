package publish

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"lighthouse-score-analyzer/internal/model"
)

func TestParseTarget(t *testing.T) {
	got, err := ParseTarget("web/lighthouse-summary")
	require.NoError(t, err)
	assert.Equal(t, Target{Namespace: "web", Name: "lighthouse-summary"}, got)
	assert.Equal(t, "web/lighthouse-summary", got.String())

	got, err = ParseTarget("lighthouse-summary")
	require.NoError(t, err)
	assert.Equal(t, "default", got.Namespace)

	for _, bad := range []string{"", "/name", "ns/", "a/b/c"} {
		_, err := ParseTarget(bad)
		assert.Error(t, err, bad)
	}
}

func TestConfigMapCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset()
	target := Target{Namespace: "web", Name: "lighthouse"}

	s := model.NewSummary(model.ModeAnalyze, "./reports/lighthouse")
	require.NoError(t, ConfigMap(ctx, client, target, s))

	cm, err := client.CoreV1().ConfigMaps("web").Get(ctx, "lighthouse", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPassed, cm.Data[KeyStatus])
	assert.Equal(t, "lhscores", cm.Labels["app.kubernetes.io/name"])
	var decoded model.Summary
	require.NoError(t, json.Unmarshal([]byte(cm.Data[KeySummary]), &decoded))
	assert.Equal(t, s.ID, decoded.ID)

	s2 := model.NewSummary(model.ModeCompare, "./reports/lighthouse")
	s2.Status = model.StatusRegressed
	require.NoError(t, ConfigMap(ctx, client, target, s2))

	cm, err = client.CoreV1().ConfigMaps("web").Get(ctx, "lighthouse", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRegressed, cm.Data[KeyStatus])
	require.NoError(t, json.Unmarshal([]byte(cm.Data[KeySummary]), &decoded))
	assert.Equal(t, s2.ID, decoded.ID)
}

func TestConfigMapPreservesOtherKeys(t *testing.T) {
	ctx := context.Background()
	client := fake.NewSimpleClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "lighthouse", Namespace: "web"},
		Data:       map[string]string{"owner": "frontend"},
	})

	require.NoError(t, ConfigMap(ctx, client, Target{Namespace: "web", Name: "lighthouse"}, model.NewSummary(model.ModeAnalyze, "r")))

	cm, err := client.CoreV1().ConfigMaps("web").Get(ctx, "lighthouse", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "frontend", cm.Data["owner"])
	assert.Contains(t, cm.Data, KeySummary)
}

package analyze

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeReport writes a Lighthouse report with the given fractional scores.
func writeReport(t *testing.T, dir, page string, scores map[string]float64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	var parts []string
	for k, v := range scores {
		parts = append(parts, fmt.Sprintf("%q: {\"id\": %q, \"score\": %v}", k, k, v))
	}
	body := fmt.Sprintf(`{"requestedUrl": "https://example.com/%s", "categories": {%s}}`, page, strings.Join(parts, ", "))
	path := filepath.Join(dir, "lighthouse-"+page+".report.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func perfect() map[string]float64 {
	return map[string]float64{"performance": 0.97, "accessibility": 1, "best-practices": 1, "seo": 1}
}

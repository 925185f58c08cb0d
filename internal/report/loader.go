package report

import (
	"encoding/json"
	"fmt"
	"os"

	"lighthouse-score-analyzer/internal/model"
)

// Load reads and decodes the Lighthouse report at path. Missing, unreadable
// and malformed files all surface as an error; callers skip the file.
func Load(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("load report %s: %w", path, err)
	}
	return &r, nil
}

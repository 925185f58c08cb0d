package output

import (
	"encoding/json"
	"fmt"
	"os"

	"lighthouse-score-analyzer/internal/model"
)

// WriteJSON writes the summary as indented JSON.
func WriteJSON(path string, s *model.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return f.Close()
}

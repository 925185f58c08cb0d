package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"lighthouse-score-analyzer/internal/model"
)

// WriteCSV writes one row per page and category. The file is UTF-8 with a
// BOM so it opens cleanly in Excel.
func WriteCSV(path string, s *model.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	defer f.Close()
	_, _ = f.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(f)
	for _, row := range Rows(s) {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Rows flattens the summary into CSV records, header first.
func Rows(s *model.Summary) [][]string {
	if s.Comparison != nil {
		rows := [][]string{{"Before", "After", "Page", "Category", "Before Score", "After Score", "Diff", "Change"}}
		c := s.Comparison
		for _, p := range c.Pages {
			for _, d := range p.Deltas {
				rows = append(rows, []string{
					c.Before, c.After, p.Name, string(d.Category),
					strconv.Itoa(d.Before), strconv.Itoa(d.After), strconv.Itoa(d.Diff), string(d.Change),
				})
			}
		}
		return rows
	}

	rows := [][]string{{"Run", "Page", "URL", "Category", "Score", "Baseline", "Diff", "Status", "Rating", "Passed"}}
	for _, r := range s.Runs {
		for _, p := range r.Pages {
			for _, sc := range p.Scores {
				rows = append(rows, []string{
					r.Timestamp, p.Name, p.URL, string(sc.Category),
					strconv.Itoa(sc.Score), strconv.Itoa(sc.Baseline), strconv.Itoa(sc.Diff),
					string(sc.Status), sc.Rating, strconv.FormatBool(p.Verdict.Passed),
				})
			}
		}
	}
	return rows
}

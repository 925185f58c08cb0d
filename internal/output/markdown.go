package output

import (
	"fmt"
	"io"
	"os"

	"lighthouse-score-analyzer/internal/compare"
	"lighthouse-score-analyzer/internal/model"
	"lighthouse-score-analyzer/internal/trend"
)

// WriteMarkdown renders the summary to path.
func WriteMarkdown(path string, s *model.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	defer f.Close()

	RenderMarkdown(f, s)
	if err := f.Close(); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	return nil
}

// RenderMarkdown writes the summary as a Markdown report.
func RenderMarkdown(w io.Writer, s *model.Summary) {
	fmt.Fprintf(w, "# Lighthouse Score Report\n\n")
	fmt.Fprintf(w, "- **Status:** %s\n", s.Status)
	fmt.Fprintf(w, "- **Generated:** %s\n", s.GeneratedUTC)
	fmt.Fprintf(w, "- **Report directory:** `%s`\n", s.ReportDir)
	if s.Budget != "" {
		fmt.Fprintf(w, "- **Budget:** %s\n", s.Budget)
	}
	fmt.Fprintf(w, "\n## Baseline\n\n")
	fmt.Fprintf(w, "| Category | Score |\n|---|---|\n")
	for _, c := range model.Categories {
		fmt.Fprintf(w, "| %s | %d |\n", c.Label(), s.Baseline.Get(c))
	}

	for _, r := range s.Runs {
		fmt.Fprintf(w, "\n## Run %s\n\n", r.Timestamp)
		if r.Error != "" {
			fmt.Fprintf(w, "Could not read run: %s\n", r.Error)
			continue
		}
		if len(r.Pages) == 0 {
			fmt.Fprintf(w, "No report files found.\n")
			continue
		}
		fmt.Fprintf(w, "| Page | Category | Score | Baseline | Diff | Status | Rating |\n")
		fmt.Fprintf(w, "|---|---|---|---|---|---|---|\n")
		for _, p := range r.Pages {
			if !p.Loaded() {
				fmt.Fprintf(w, "| %s | - | - | - | - | LOAD ERROR | - |\n", p.Name)
				continue
			}
			if !p.HasScores {
				fmt.Fprintf(w, "| %s | - | - | - | - | NO SCORES | - |\n", p.Name)
				continue
			}
			for _, sc := range p.Scores {
				fmt.Fprintf(w, "| %s | %s | %d | %d | %+d | %s | %s |\n",
					p.Name, sc.Category.Label(), sc.Score, sc.Baseline, sc.Diff, sc.Status, sc.Rating)
			}
		}

		var warned bool
		for _, p := range r.Pages {
			if len(p.Verdict.Warnings) == 0 {
				continue
			}
			if !warned {
				fmt.Fprintf(w, "\n### Warnings\n\n")
				warned = true
			}
			for _, warning := range p.Verdict.Warnings {
				fmt.Fprintf(w, "- **%s**: %s\n", p.Name, warning)
			}
		}
	}

	if len(s.Trends) > 0 {
		fmt.Fprintf(w, "\n## Trend\n\n")
		for _, t := range s.Trends {
			tr := trend.Trend{Direction: trend.Direction(t.Direction)}
			fmt.Fprintf(w, "- %s: %s %0.2f → %0.2f (%+0.2f, %+0.2f%%)\n",
				t.Category.Label(), tr.Arrow(), t.From, t.To, t.Delta, t.Percent)
		}
	}

	if c := s.Comparison; c != nil {
		fmt.Fprintf(w, "\n## Comparison %s → %s\n\n", c.Before, c.After)
		if len(c.Pages) == 0 {
			fmt.Fprintf(w, "No common pages to compare.\n")
		}
		for _, p := range c.Pages {
			fmt.Fprintf(w, "### %s\n\n", p.Name)
			switch {
			case p.Error != "":
				fmt.Fprintf(w, "Could not load report: %s\n\n", p.Error)
				continue
			case p.NoScores:
				fmt.Fprintf(w, "No category scores available.\n\n")
				continue
			}
			for _, d := range p.Deltas {
				fmt.Fprintf(w, "- %s [%s]\n", compare.Describe(d), d.Change)
			}
			if p.Regressed {
				fmt.Fprintf(w, "\n**Regression detected.**\n")
			}
			fmt.Fprintln(w)
		}
	}
}

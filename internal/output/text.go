package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"lighthouse-score-analyzer/internal/compare"
	"lighthouse-score-analyzer/internal/history"
	"lighthouse-score-analyzer/internal/model"
	"lighthouse-score-analyzer/internal/trend"
)

var (
	red    = []color.Attribute{color.FgRed}
	green  = []color.Attribute{color.FgGreen}
	yellow = []color.Attribute{color.FgYellow, color.Bold}
	blue   = []color.Attribute{color.FgBlue}
	cyan   = []color.Attribute{color.FgCyan}
	plain  = []color.Attribute{}
)

// Printer renders results as colored terminal text.
type Printer struct {
	w        io.Writer
	colorize bool
}

func NewPrinter(w io.Writer, colorize bool) *Printer {
	return &Printer{w: w, colorize: colorize}
}

func (p *Printer) line(attrs []color.Attribute, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !p.colorize || len(attrs) == 0 {
		fmt.Fprintln(p.w, msg)
		return
	}
	c := color.New(attrs...)
	c.EnableColor()
	c.Fprintln(p.w, msg)
}

func (p *Printer) blank() {
	fmt.Fprintln(p.w)
}

// Error prints a failure diagnostic.
func (p *Printer) Error(format string, args ...any) {
	p.line(red, "❌ "+format, args...)
}

// Warn prints a non-fatal notice.
func (p *Printer) Warn(format string, args ...any) {
	p.line(yellow, "⚠️  "+format, args...)
}

func (p *Printer) Info(format string, args ...any) {
	p.line(plain, format, args...)
}

// RunList prints the available run names.
func (p *Printer) RunList(runs []history.Run) {
	p.line(cyan, "\n📋 Available runs (%d):\n", len(runs))
	for _, r := range runs {
		p.line(plain, "   • %s", r.Timestamp)
	}
	p.blank()
}

// Directory prints every analyzed run, separated by dividers.
func (p *Printer) Directory(total int, runs []model.RunResult) {
	p.line(cyan, "\n📊 Found %d runs\n", total)
	for _, r := range runs {
		p.line(blue, "%s", strings.Repeat("=", 60))
		p.Run(r)
		p.blank()
	}
}

// Run prints the per-page scores and verdicts of one run.
func (p *Printer) Run(r model.RunResult) {
	p.line(cyan, "📅 Run: %s", r.Timestamp)
	if r.Error != "" {
		p.line(red, "   ❌ Could not read run: %s", r.Error)
		return
	}
	if len(r.Pages) == 0 {
		p.line(yellow, "   ⚠️  No report files found")
		return
	}

	for _, page := range r.Pages {
		if !page.Loaded() {
			p.line(red, "❌ Could not load report: %s", page.File)
			p.line(red, "   Error: %s", page.Error)
			continue
		}

		p.line(plain, "\n   📄 %s:", page.Name)
		if !page.HasScores {
			p.line(yellow, "      ⚠️  No category scores available")
		}
		for _, s := range page.Scores {
			p.line(statusColor(s.Status), "      %s %s: %d/100 (baseline: %d, diff: %+d)",
				statusSymbol(s.Status), s.Category.Label(), s.Score, s.Baseline, s.Diff)
		}

		if !page.Verdict.Passed {
			p.line(yellow, "\n   ⚠️  Warnings:")
			for _, w := range page.Verdict.Warnings {
				p.line(plain, "      • %s", w)
			}
		} else if budget := budgetWarnings(page.Verdict); len(budget) > 0 {
			p.line(yellow, "\n   💡 Budget:")
			for _, w := range budget {
				p.line(plain, "      • %s", w)
			}
		}
	}

	if r.Passed() {
		p.line(green, "\n   🎉 All pages passed!")
	} else {
		p.line(yellow, "\n   ⚠️  Some pages regressed")
	}
}

// Trends prints the movement of each category across the analyzed runs.
func (p *Printer) Trends(trends []model.CategoryTrend) {
	if len(trends) == 0 {
		return
	}
	p.line(cyan, "📈 Trend across analyzed runs:")
	for _, t := range trends {
		tr := trend.Trend{Direction: trend.Direction(t.Direction)}
		p.line(trendColor(tr.Direction), "   %s %s: %s %.2f → %.2f (%+.2f, %+.2f%%)",
			tr.Arrow(), t.Category.Label(), tr.Label(), t.From, t.To, t.Delta, t.Percent)
	}
	p.blank()
}

// Comparison prints the page-by-page movement between two runs.
func (p *Printer) Comparison(c model.RunComparison) {
	p.line(cyan, "\n📊 Run comparison\n")
	p.line(plain, "   Before: %s", c.Before)
	p.line(plain, "   After:  %s\n", c.After)

	if len(c.Pages) == 0 {
		p.line(yellow, "⚠️  No common pages to compare")
		return
	}

	for _, page := range c.Pages {
		if page.Error != "" {
			p.line(red, "❌ Could not load report: %s", page.Key)
			p.line(red, "   Error: %s", page.Error)
			continue
		}
		p.line(blue, "   📄 %s:", page.Name)
		if page.NoScores {
			p.line(yellow, "      ⚠️  No category scores available")
			p.blank()
			continue
		}
		for _, d := range page.Deltas {
			p.line(changeColor(d.Change), "      %s %s", changeSymbol(d.Change), compare.Describe(d))
		}
		if page.Regressed {
			p.line(red, "      ⚠️  Performance regression detected!")
		}
		p.blank()
	}
}

func budgetWarnings(v model.Verdict) []model.Warning {
	var out []model.Warning
	for _, w := range v.Warnings {
		if w.Kind == model.WarningBudget {
			out = append(out, w)
		}
	}
	return out
}

func statusColor(s model.Status) []color.Attribute {
	switch s {
	case model.StatusPass:
		return green
	case model.StatusWarn:
		return yellow
	default:
		return red
	}
}

func statusSymbol(s model.Status) string {
	switch s {
	case model.StatusPass:
		return "✅"
	case model.StatusWarn:
		return "⚠️ "
	default:
		return "❌"
	}
}

func changeColor(c model.Change) []color.Attribute {
	switch c {
	case model.ChangeImproved:
		return green
	case model.ChangeDeclined:
		return yellow
	case model.ChangeRegressed:
		return red
	default:
		return plain
	}
}

func changeSymbol(c model.Change) string {
	switch c {
	case model.ChangeImproved:
		return "📈"
	case model.ChangeDeclined, model.ChangeRegressed:
		return "📉"
	default:
		return "➡️ "
	}
}

func trendColor(d trend.Direction) []color.Attribute {
	switch d {
	case trend.Up:
		return green
	case trend.Down:
		return yellow
	default:
		return plain
	}
}

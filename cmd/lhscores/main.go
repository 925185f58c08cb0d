package main

import (
	"context"
	"errors"
	goflag "flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"lighthouse-score-analyzer/internal/analyze"
	"lighthouse-score-analyzer/internal/compare"
	"lighthouse-score-analyzer/internal/config"
	"lighthouse-score-analyzer/internal/history"
	"lighthouse-score-analyzer/internal/kube"
	"lighthouse-score-analyzer/internal/model"
	"lighthouse-score-analyzer/internal/output"
	"lighthouse-score-analyzer/internal/publish"
)

type options struct {
	reportDir  string
	timestamp  string
	compare    string
	list       bool
	configPath string
	recent     int
	budget     string
	jsonOut    string
	mdOut      string
	csvOut     string
	noColor    bool
	strict     bool
	kubeconfig string
	configMap  string
	timeout    time.Duration
}

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	klog.Flush()
	os.Exit(code)
}

// run executes one invocation and returns the process exit status.
func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	var o options
	fs := pflag.NewFlagSet("lhscores", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.reportDir, "report-dir", config.DefaultReportDir, "Report root directory")
	fs.StringVar(&o.timestamp, "timestamp", "", "Analyze only this run")
	fs.StringVar(&o.compare, "compare", "", "Compare two runs: --compare TS1 TS2 (or TS1,TS2)")
	fs.BoolVar(&o.list, "list", false, "List available runs")
	fs.StringVar(&o.configPath, "config", "", "Optional YAML config file")
	fs.IntVar(&o.recent, "recent", history.DefaultRecent, "Number of most recent runs to analyze")
	fs.StringVar(&o.budget, "budget", "", "Performance budget: small|medium|large")
	fs.StringVar(&o.jsonOut, "json", "", "Also write a JSON summary to this path")
	fs.StringVar(&o.mdOut, "markdown", "", "Also write a Markdown report to this path")
	fs.StringVar(&o.csvOut, "csv", "", "Also write a CSV export to this path")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&o.strict, "strict", false, "Exit with status 2 when a regression is detected")
	fs.StringVar(&o.kubeconfig, "kubeconfig", "", "Path to kubeconfig (for --publish-configmap)")
	fs.StringVar(&o.configMap, "publish-configmap", "", "Publish the summary to NAMESPACE/NAME")
	fs.DurationVar(&o.timeout, "timeout", 30*time.Second, "Timeout for Kubernetes API calls")

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}

	pr := output.NewPrinter(stdout, !o.noColor && !color.NoColor)

	cfg := resolveConfig(pr, fs, o, getenv)
	policy := cfg.Policy()
	klog.V(1).InfoS("Resolved configuration", "reportDir", cfg.ReportDir, "recent", cfg.Recent,
		"threshold", policy.Threshold, "budget", cfg.Budget)

	if o.list {
		listRuns(pr, cfg.ReportDir)
		return 0
	}

	var summary *model.Summary
	if fs.Changed("compare") {
		before, after, ok := compareArgs(o.compare, fs.Args())
		if !ok {
			fmt.Fprintln(stderr, "--compare needs two timestamps: --compare TS1 TS2")
			fs.Usage()
			return 2
		}
		summary = compareRuns(pr, cfg.ReportDir, before, after, policy)
	} else {
		summary = analyzeRuns(pr, cfg.ReportDir, o.timestamp, cfg.Recent, policy)
	}
	if summary == nil {
		return 0
	}

	summary.Baseline = policy.Baseline
	summary.Threshold = policy.Threshold
	summary.Budget = string(policy.Budget.Name)
	summary.Finalize()

	export(pr, summary, o)
	if o.configMap != "" {
		publishSummary(pr, summary, o)
	}
	return exitStatus(summary, o.strict)
}

// resolveConfig layers config file, environment and explicit flags. Invalid
// input is reported and the previous layer is kept.
func resolveConfig(pr *output.Printer, fs *pflag.FlagSet, o options, getenv func(string) string) config.Config {
	fileCfg, err := config.Load(o.configPath)
	if err != nil {
		pr.Error("Invalid config, using defaults: %v", err)
		fileCfg = config.Default()
	}
	cfg := fileCfg
	if err := cfg.ApplyEnv(getenv); err != nil {
		pr.Error("Invalid environment, ignoring it: %v", err)
		cfg = fileCfg
	}
	envCfg := cfg
	if fs.Changed("report-dir") {
		cfg.ReportDir = o.reportDir
	}
	if fs.Changed("recent") {
		cfg.Recent = o.recent
	}
	if fs.Changed("budget") {
		cfg.Budget = o.budget
	}
	if err := cfg.Validate(); err != nil {
		pr.Error("Invalid flags, ignoring them: %v", err)
		cfg = envCfg
	}
	return cfg
}

// compareArgs accepts "--compare TS1 TS2" and "--compare TS1,TS2".
func compareArgs(first string, rest []string) (string, string, bool) {
	if before, after, found := strings.Cut(first, ","); found {
		return before, after, before != "" && after != ""
	}
	if first == "" || len(rest) == 0 || rest[0] == "" {
		return "", "", false
	}
	return first, rest[0], true
}

func listRuns(pr *output.Printer, root string) {
	runs, err := history.List(root)
	switch {
	case errors.Is(err, history.ErrRootNotFound):
		pr.Error("Report directory not found: %s", root)
		return
	case err != nil:
		pr.Error("%v", err)
		return
	case len(runs) == 0:
		pr.Warn("No reports found")
		return
	}
	pr.RunList(runs)
}

func analyzeRuns(pr *output.Printer, root, timestamp string, recent int, p analyze.Policy) *model.Summary {
	res, err := analyze.Directory(root, timestamp, recent, p)
	switch {
	case errors.Is(err, history.ErrRootNotFound):
		pr.Error("Report directory not found: %s", root)
		return nil
	case errors.Is(err, history.ErrRunNotFound):
		pr.Error("Report not found: %s", timestamp)
		return nil
	case errors.Is(err, history.ErrNoRuns):
		pr.Warn("No reports found")
		return nil
	case err != nil:
		pr.Error("%v", err)
		return nil
	}

	if timestamp != "" {
		pr.Run(res.Runs[0])
	} else {
		pr.Directory(res.Total, res.Runs)
	}
	for _, r := range res.Runs {
		if r.LoadErrors != nil {
			klog.V(1).InfoS("Reports skipped", "run", r.Timestamp, "err", r.LoadErrors)
		}
	}

	s := model.NewSummary(model.ModeAnalyze, root)
	s.Runs = res.Runs
	s.Trends = analyze.Trends(res.Runs)
	pr.Trends(s.Trends)
	return s
}

func compareRuns(pr *output.Printer, root, before, after string, p analyze.Policy) *model.Summary {
	prev, err := history.Resolve(root, before)
	if err != nil {
		pr.Error("Report not found: %s", before)
		return nil
	}
	curr, err := history.Resolve(root, after)
	if err != nil {
		pr.Error("Report not found: %s", after)
		return nil
	}

	res, err := compare.Runs(prev, curr, p)
	if err != nil {
		pr.Error("%v", err)
		return nil
	}
	pr.Comparison(res)

	s := model.NewSummary(model.ModeCompare, root)
	s.Comparison = &res
	return s
}

// export writes the optional report files. Failures are printed only.
func export(pr *output.Printer, s *model.Summary, o options) {
	writers := []struct {
		path  string
		label string
		write func(string, *model.Summary) error
	}{
		{o.jsonOut, "JSON", output.WriteJSON},
		{o.mdOut, "Markdown", output.WriteMarkdown},
		{o.csvOut, "CSV", output.WriteCSV},
	}
	for _, w := range writers {
		if w.path == "" {
			continue
		}
		if err := w.write(w.path, s); err != nil {
			pr.Error("Write %s %s: %v", w.label, w.path, err)
			continue
		}
		pr.Info("%s: %s", w.label, w.path)
	}
}

func publishSummary(pr *output.Printer, s *model.Summary, o options) {
	target, err := publish.ParseTarget(o.configMap)
	if err != nil {
		pr.Error("%v", err)
		return
	}
	client, err := kube.NewClient(o.kubeconfig)
	if err != nil {
		pr.Error("Publish skipped: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()
	if err := publish.ConfigMap(ctx, client, target, s); err != nil {
		pr.Error("Publish failed: %v", err)
		return
	}
	pr.Info("Published summary to configmap %s", target)
}

// exitStatus is 0 unless --strict was given and a regression was found.
func exitStatus(s *model.Summary, strict bool) int {
	if strict && s.Status == model.StatusRegressed {
		return 2
	}
	return 0
}

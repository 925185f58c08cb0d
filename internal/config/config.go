package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"sigs.k8s.io/yaml"

	"lighthouse-score-analyzer/internal/analyze"
	"lighthouse-score-analyzer/internal/history"
	"lighthouse-score-analyzer/internal/model"
	"lighthouse-score-analyzer/internal/profile"
)

const DefaultReportDir = "./reports/lighthouse"

// Environment variables read by ApplyEnv.
const (
	EnvReportDir = "LIGHTHOUSE_REPORT_DIR"
	EnvBudget    = "LIGHTHOUSE_BUDGET"
	EnvRecent    = "LIGHTHOUSE_RECENT"
)

// Config is the resolved tool configuration. Precedence, lowest first:
// defaults, config file, environment, flags.
type Config struct {
	ReportDir           string         `json:"reportDir,omitempty"`
	Recent              int            `json:"recent,omitempty"`
	RegressionThreshold int            `json:"regressionThreshold,omitempty"`
	Budget              string         `json:"budget,omitempty"`
	Baseline            map[string]int `json:"baseline,omitempty"`
}

func Default() Config {
	return Config{
		ReportDir:           DefaultReportDir,
		Recent:              history.DefaultRecent,
		RegressionThreshold: analyze.DefaultThreshold,
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path yields the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.UnmarshalStrict(raw, &file); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.merge(file)
	return cfg, cfg.Validate()
}

func (c *Config) merge(o Config) {
	if o.ReportDir != "" {
		c.ReportDir = o.ReportDir
	}
	if o.Recent != 0 {
		c.Recent = o.Recent
	}
	if o.RegressionThreshold != 0 {
		c.RegressionThreshold = o.RegressionThreshold
	}
	if o.Budget != "" {
		c.Budget = o.Budget
	}
	if len(o.Baseline) > 0 {
		if c.Baseline == nil {
			c.Baseline = map[string]int{}
		}
		for k, v := range o.Baseline {
			c.Baseline[k] = v
		}
	}
}

// ApplyEnv overlays values from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvReportDir)); v != "" {
		c.ReportDir = v
	}
	if v := strings.TrimSpace(getenv(EnvBudget)); v != "" {
		c.Budget = v
	}
	if v := strings.TrimSpace(getenv(EnvRecent)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRecent, err)
		}
		c.Recent = n
	}
	return c.Validate()
}

func (c Config) Validate() error {
	if c.Recent <= 0 {
		return fmt.Errorf("recent must be positive, got %d", c.Recent)
	}
	if c.RegressionThreshold <= 0 {
		return fmt.Errorf("regressionThreshold must be positive, got %d", c.RegressionThreshold)
	}
	if c.Budget != "" && profile.Normalize(c.Budget) == profile.None {
		return fmt.Errorf("unknown budget %q (want small, medium or large)", c.Budget)
	}
	for k, v := range c.Baseline {
		if _, ok := model.ParseCategory(k); !ok {
			return fmt.Errorf("baseline: unknown category %q", k)
		}
		if v < 0 || v > 100 {
			return fmt.Errorf("baseline: %s must be within 0-100, got %d", k, v)
		}
	}
	return nil
}

// Policy builds the scoring policy. Baseline entries not set in the config
// keep their default.
func (c Config) Policy() analyze.Policy {
	p := analyze.DefaultPolicy()
	for k, v := range c.Baseline {
		if cat, ok := model.ParseCategory(k); ok {
			p.Baseline[cat] = v
		}
	}
	if c.RegressionThreshold > 0 {
		p.Threshold = c.RegressionThreshold
	}
	p.Budget = profile.For(profile.Normalize(c.Budget))
	return p
}

package model

import "strings"

// Category is one of the Lighthouse audit categories tracked by the analyzer.
type Category string

const (
	Performance   Category = "performance"
	Accessibility Category = "accessibility"
	BestPractices Category = "best-practices"
	SEO           Category = "seo"
)

// Categories lists the tracked categories in the order they are reported.
var Categories = [...]Category{Performance, Accessibility, BestPractices, SEO}

// Label is the upper-case form used in printed output.
func (c Category) Label() string {
	return strings.ToUpper(string(c))
}

// ParseCategory maps a report key to a tracked category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Status is the display classification of a single category score.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Change is the direction of a category score between two runs.
type Change string

const (
	ChangeImproved  Change = "IMPROVED"
	ChangeUnchanged Change = "UNCHANGED"
	ChangeDeclined  Change = "DECLINED"
	// ChangeRegressed is a decline at or beyond the regression threshold.
	ChangeRegressed Change = "REGRESSED"
)

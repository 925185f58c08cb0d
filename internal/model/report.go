package model

// Report is the subset of a Lighthouse JSON report the analyzer reads.
type Report struct {
	LighthouseVersion string `json:"lighthouseVersion,omitempty"`
	RequestedURL      string `json:"requestedUrl,omitempty"`
	FinalURL          string `json:"finalUrl,omitempty"`
	FinalDisplayedURL string `json:"finalDisplayedUrl,omitempty"`
	FetchTime         string `json:"fetchTime,omitempty"`

	// Categories is nil when the report has no "categories" object at all.
	Categories map[string]CategoryResult `json:"categories,omitempty"`
}

type CategoryResult struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	// Score is a fraction in [0,1]; Lighthouse writes null when the
	// category could not be scored.
	Score *float64 `json:"score"`
}

// URL returns the audited page URL, preferring the final URL after redirects.
func (r *Report) URL() string {
	switch {
	case r.FinalDisplayedURL != "":
		return r.FinalDisplayedURL
	case r.FinalURL != "":
		return r.FinalURL
	default:
		return r.RequestedURL
	}
}

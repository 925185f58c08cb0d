package analyze

import (
	"path/filepath"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/klog/v2"

	"lighthouse-score-analyzer/internal/history"
	"lighthouse-score-analyzer/internal/model"
	"lighthouse-score-analyzer/internal/report"
)

// Run loads, scores and judges every report of one run. A report that cannot
// be loaded is recorded with its error and skipped. When the run directory
// cannot be read the failure is recorded on the result and also returned.
func Run(run history.Run, p Policy) (model.RunResult, error) {
	res := model.RunResult{Timestamp: run.Timestamp, Dir: run.Dir}

	files, err := run.ReportFiles()
	if err != nil {
		res.Error = err.Error()
		return res, err
	}

	var loadErrs []error
	for _, f := range files {
		page := model.PageResult{
			File: filepath.Base(f),
			Name: history.PageName(history.Stem(f)),
		}

		r, err := report.Load(f)
		if err != nil {
			klog.V(2).InfoS("Skipping report", "run", run.Timestamp, "file", f, "err", err)
			page.Error = err.Error()
			loadErrs = append(loadErrs, err)
			res.Pages = append(res.Pages, page)
			continue
		}
		page.URL = r.URL()

		scores, ok := report.Extract(r)
		page.HasScores = ok
		page.Scores = p.Score(scores)
		page.Verdict = p.Evaluate(scores)
		res.Pages = append(res.Pages, page)
	}

	res.LoadErrors = utilerrors.NewAggregate(loadErrs)
	return res, nil
}

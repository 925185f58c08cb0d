package analyze

import (
	"k8s.io/klog/v2"

	"lighthouse-score-analyzer/internal/history"
	"lighthouse-score-analyzer/internal/model"
)

// DirectoryResult is the outcome of analyzing a report root.
type DirectoryResult struct {
	// Total is the number of runs found under the root; zero when a single
	// timestamp was requested.
	Total int
	Runs  []model.RunResult
}

// Directory analyzes the run named by timestamp, or the most recent runs
// under root when timestamp is empty. A run directory that cannot be read is
// kept in the result with its Error set; only a missing root, a missing
// timestamp or an empty root fail the call.
func Directory(root, timestamp string, recent int, p Policy) (DirectoryResult, error) {
	if timestamp != "" {
		run, err := history.Resolve(root, timestamp)
		if err != nil {
			return DirectoryResult{}, err
		}
		return DirectoryResult{Runs: runAll([]history.Run{run}, p)}, nil
	}

	runs, err := history.List(root)
	if err != nil {
		return DirectoryResult{}, err
	}
	if len(runs) == 0 {
		return DirectoryResult{}, history.ErrNoRuns
	}
	return DirectoryResult{Total: len(runs), Runs: runAll(history.Recent(runs, recent), p)}, nil
}

func runAll(runs []history.Run, p Policy) []model.RunResult {
	out := make([]model.RunResult, 0, len(runs))
	for _, run := range runs {
		res, err := Run(run, p)
		if err != nil {
			klog.V(1).InfoS("Run directory unreadable", "run", run.Timestamp, "err", err)
		}
		out = append(out, res)
	}
	return out
}

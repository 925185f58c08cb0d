package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"k8s.io/klog/v2"
)

var (
	ErrRootNotFound = errors.New("report directory not found")
	ErrRunNotFound  = errors.New("run not found")
	ErrNoRuns       = errors.New("no runs found")
)

const (
	// ReportSuffix marks a Lighthouse JSON report inside a run directory.
	ReportSuffix = ".report.json"

	DefaultRecent = 5
)

// timestampPattern is the directory name written by the report generator,
// e.g. 20251202_120000. Only names of this shape are guaranteed to sort
// chronologically.
var timestampPattern = regexp.MustCompile(`^\d{8}_\d{6}$`)

// Run is one timestamped directory of reports.
type Run struct {
	Timestamp string `json:"timestamp"`
	Dir       string `json:"dir"`
}

// List returns the run directories under root in ascending name order.
func List(root string) ([]Run, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("list runs in %s: %w", root, err)
	}

	var runs []Run
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		if !isDir(dir, e) {
			continue
		}
		if !timestampPattern.MatchString(e.Name()) {
			klog.V(1).InfoS("Run directory name is not a generator timestamp; ordering assumes it sorts chronologically", "dir", dir)
		}
		runs = append(runs, Run{Timestamp: e.Name(), Dir: dir})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp < runs[j].Timestamp })
	return runs, nil
}

// Recent returns the last n runs, oldest first.
func Recent(runs []Run, n int) []Run {
	if n <= 0 || len(runs) <= n {
		return runs
	}
	return runs[len(runs)-n:]
}

// Resolve looks up the run named timestamp under root.
func Resolve(root, timestamp string) (Run, error) {
	if _, err := os.Stat(root); err != nil {
		return Run{}, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	dir := filepath.Join(root, timestamp)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, timestamp)
	}
	return Run{Timestamp: timestamp, Dir: dir}, nil
}

// ReportFiles returns the report paths of the run in ascending file name order.
func (r Run) ReportFiles() ([]string, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", r.Timestamp, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ReportSuffix) {
			continue
		}
		files = append(files, filepath.Join(r.Dir, e.Name()))
	}
	return files, nil
}

// ReportIndex maps each report's stem to its path.
func (r Run) ReportIndex() (map[string]string, error) {
	files, err := r.ReportFiles()
	if err != nil {
		return nil, err
	}
	idx := make(map[string]string, len(files))
	for _, f := range files {
		idx[Stem(f)] = f
	}
	return idx, nil
}

// Stem is the file name without its final extension:
// "lighthouse-home.report.json" -> "lighthouse-home.report".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PageName strips the generator's tokens from a stem for display.
func PageName(stem string) string {
	name := strings.ReplaceAll(stem, ".report", "")
	return strings.ReplaceAll(name, "lighthouse-", "")
}

// isDir follows symlinks so a linked run directory is still listed.
func isDir(path string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

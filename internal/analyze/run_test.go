package analyze

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lighthouse-score-analyzer/internal/history"
	"lighthouse-score-analyzer/internal/model"
)

func TestRunFlagsRegression(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20251202_120000")
	writeReport(t, dir, "home", perfect())
	slow := perfect()
	slow["performance"] = 0.90
	writeReport(t, dir, "about", slow)

	res, err := Run(history.Run{Timestamp: "20251202_120000", Dir: dir}, DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, res.Pages, 2)

	about := res.Pages[0]
	assert.Equal(t, "about", about.Name)
	assert.Equal(t, "lighthouse-about.report.json", about.File)
	assert.Equal(t, "https://example.com/about", about.URL)
	assert.False(t, about.Verdict.Passed)
	require.Len(t, about.Verdict.Warnings, 1)
	assert.Equal(t, 7, about.Verdict.Warnings[0].Drop)

	home := res.Pages[1]
	assert.True(t, home.Verdict.Passed)
	assert.Len(t, home.Scores, 4)

	assert.False(t, res.Passed())
	assert.NoError(t, res.LoadErrors)
}

func TestRunSkipsUnloadableReports(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "home", perfect())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lighthouse-broken.report.json"), []byte("{not json"), 0o644))

	res, err := Run(history.Run{Timestamp: "t", Dir: dir}, DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, res.Pages, 2)

	broken := res.Pages[0]
	assert.False(t, broken.Loaded())
	assert.NotEmpty(t, broken.Error)
	assert.Error(t, res.LoadErrors)
	assert.True(t, res.Passed(), "load failures do not mark the run as regressed")
}

func TestRunWithoutCategories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lighthouse-home.report.json"), []byte(`{"lighthouseVersion": "12"}`), 0o644))

	res, err := Run(history.Run{Timestamp: "t", Dir: dir}, DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, res.Pages, 1)
	assert.False(t, res.Pages[0].HasScores)
	assert.Empty(t, res.Pages[0].Scores)
	assert.False(t, res.Pages[0].Verdict.Passed)
}

func TestRunEmptyDirectory(t *testing.T) {
	res, err := Run(history.Run{Timestamp: "t", Dir: t.TempDir()}, DefaultPolicy())
	require.NoError(t, err)
	assert.Empty(t, res.Pages)
	assert.True(t, res.Passed())
}

func TestRunIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "home", perfect())
	mixed := perfect()
	mixed["seo"] = 0.97
	mixed["accessibility"] = 0.8
	writeReport(t, dir, "docs", mixed)
	run := history.Run{Timestamp: "t", Dir: dir}

	first, err := Run(run, DefaultPolicy())
	require.NoError(t, err)
	second, err := Run(run, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, first.Pages, second.Pages)
}

func TestDirectoryAnalyzesMostRecent(t *testing.T) {
	root := t.TempDir()
	names := []string{
		"20251207_000000", "20251201_000000", "20251203_000000", "20251202_000000",
		"20251206_000000", "20251204_000000", "20251205_000000",
	}
	for _, n := range names {
		writeReport(t, filepath.Join(root, n), "home", perfect())
	}

	res, err := Directory(root, "", history.DefaultRecent, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, 7, res.Total)
	var got []string
	for _, r := range res.Runs {
		got = append(got, r.Timestamp)
	}
	assert.Equal(t, []string{
		"20251203_000000", "20251204_000000", "20251205_000000",
		"20251206_000000", "20251207_000000",
	}, got)
}

func TestDirectorySingleTimestamp(t *testing.T) {
	root := t.TempDir()
	writeReport(t, filepath.Join(root, "20251201_000000"), "home", perfect())
	writeReport(t, filepath.Join(root, "20251202_000000"), "home", perfect())

	res, err := Directory(root, "20251201_000000", history.DefaultRecent, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	require.Len(t, res.Runs, 1)
	assert.Equal(t, "20251201_000000", res.Runs[0].Timestamp)

	_, err = Directory(root, "20250101_000000", history.DefaultRecent, DefaultPolicy())
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}

func TestDirectoryMissingOrEmptyRoot(t *testing.T) {
	_, err := Directory(filepath.Join(t.TempDir(), "missing"), "", 5, DefaultPolicy())
	assert.ErrorIs(t, err, history.ErrRootNotFound)

	_, err = Directory(t.TempDir(), "", 5, DefaultPolicy())
	assert.ErrorIs(t, err, history.ErrNoRuns)
}

func TestRunUnreadableDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "20251202_000000")
	res, err := Run(history.Run{Timestamp: "20251202_000000", Dir: missing}, DefaultPolicy())
	require.Error(t, err)
	assert.Equal(t, "20251202_000000", res.Timestamp)
	assert.Contains(t, res.Error, "read run 20251202_000000")
	assert.Empty(t, res.Pages)
}

func TestRunAllKeepsGoingAfterUnreadableRun(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "20251201_000000")
	last := filepath.Join(root, "20251203_000000")
	writeReport(t, first, "home", perfect())
	writeReport(t, last, "home", perfect())

	got := runAll([]history.Run{
		{Timestamp: "20251201_000000", Dir: first},
		{Timestamp: "20251202_000000", Dir: filepath.Join(root, "20251202_000000")},
		{Timestamp: "20251203_000000", Dir: last},
	}, DefaultPolicy())

	require.Len(t, got, 3)
	assert.Len(t, got[0].Pages, 1)
	assert.Empty(t, got[0].Error)
	assert.NotEmpty(t, got[1].Error)
	assert.Len(t, got[2].Pages, 1)
	assert.Empty(t, got[2].Error)
}

func TestDirectoryUnreadableMiddleRun(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	root := t.TempDir()
	for _, n := range []string{"20251201_000000", "20251202_000000", "20251203_000000"} {
		writeReport(t, filepath.Join(root, n), "home", perfect())
	}
	middle := filepath.Join(root, "20251202_000000")
	require.NoError(t, os.Chmod(middle, 0o311))
	t.Cleanup(func() { _ = os.Chmod(middle, 0o755) })

	res, err := Directory(root, "", history.DefaultRecent, DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, res.Runs, 3)
	assert.Len(t, res.Runs[0].Pages, 1)
	assert.Contains(t, res.Runs[1].Error, "permission denied")
	assert.Len(t, res.Runs[2].Pages, 1)

	res, err = Directory(root, "20251202_000000", history.DefaultRecent, DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, res.Runs, 1)
	assert.NotEmpty(t, res.Runs[0].Error)
}

func TestTrends(t *testing.T) {
	root := t.TempDir()
	old := perfect()
	old["performance"] = 0.95
	writeReport(t, filepath.Join(root, "a"), "home", old)
	writeReport(t, filepath.Join(root, "b"), "home", perfect())

	res, err := Directory(root, "", 5, DefaultPolicy())
	require.NoError(t, err)

	trends := Trends(res.Runs)
	require.Len(t, trends, 4)
	assert.Equal(t, model.Performance, trends[0].Category)
	assert.Equal(t, 2.0, trends[0].Delta)
	assert.Equal(t, "up", trends[0].Direction)
	assert.Equal(t, "flat", trends[1].Direction)

	assert.Nil(t, Trends(res.Runs[:1]))
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/rules"
)

func TestParseWindow(t *testing.T) {
	w, err := parseWindow("", "")
	require.NoError(t, err)
	assert.True(t, w.IsZero())

	w, err = parseWindow("2024-01-02 10:00:00", "")
	require.NoError(t, err)
	require.NotNil(t, w.Start)
	assert.Nil(t, w.End)
	assert.Equal(t, 10, w.Start.Hour())

	_, err = parseWindow("yesterday", "")
	assert.ErrorContains(t, err, "invalid start time")

	_, err = parseWindow("2024-01-02 10:00:00", "2024-01-01 10:00:00")
	assert.ErrorIs(t, err, xlmerge.ErrInvalidWindow)
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"merge", "params", "nodes", "timerange", "ranges"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	set, _, err := root.Find([]string{"ranges", "set"})
	require.NoError(t, err)
	assert.NotNil(t, set.Flags().Lookup("min"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-output"))
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func writeRulesCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.csv")
	content := "file;source;target;node;parameter;min;max\n" +
		"booster;FT-101;Q1;Booster-1;Расход;10;50\n" +
		"booster;FT-102;Q2;Booster-1;Расход;1;2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRangesSetKeepsUnsetLimit(t *testing.T) {
	path := writeRulesCSV(t)

	require.NoError(t, runCLI(t, "ranges", "set", "Q1", "--max", "80", "--rules", path))

	rt, err := rules.Load(path)
	require.NoError(t, err)
	limits, ok := rt.LimitsOf("Q1")
	require.True(t, ok)
	assert.Equal(t, models.Limits{Min: 10, Max: 80}, limits)
	limits, ok = rt.LimitsOf("Q2")
	require.True(t, ok)
	assert.Equal(t, models.Limits{Min: 1, Max: 2}, limits)
}

func TestRangesSetUnknownTarget(t *testing.T) {
	path := writeRulesCSV(t)

	err := runCLI(t, "ranges", "set", "Q9", "--min", "1", "--rules", path)
	assert.ErrorContains(t, err, "unknown target column")
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sartorproj/summaryse/table"
)

const reactionTimes = `subject,cond,rt
1,A,100
1,B,120
2,A,200
2,B,240
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rt.csv")
	require.NoError(t, os.WriteFile(path, []byte(reactionTimes), 0o644))
	return path
}

func runDemo(t *testing.T, args ...string) (*table.Table, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	require.NoError(t, err, "stderr: %s", stderr.String())

	out, err := table.ReadCSV(&stdout, nil)
	require.NoError(t, err)
	return out, stderr.String()
}

func TestSummarizeGroups(t *testing.T) {
	require := require.New(t)

	out, logs := runDemo(t, "summarize", "--measure", "rt", "--group", "cond", writeCSV(t))
	require.Equal(2, out.Len())
	require.Equal("cond", out.Names()[0])

	n, err := out.Float64s("rt_len")
	require.NoError(err)
	require.Equal([]float64{2, 2}, n)
	require.Contains(logs, "msg=summary")
}

func TestSummarizeWithinSubject(t *testing.T) {
	require := require.New(t)

	out, logs := runDemo(t, "summarize",
		"--measure", "rt",
		"--within", "cond",
		"--subject", "subject",
		writeCSV(t),
	)
	require.Equal(2, out.Len())

	std, err := out.Float64s("rt_norm_std")
	require.NoError(err)
	require.InDelta(10, std[0], 1e-9)
	require.Contains(logs, "correction=1.41")
}

func TestNormalize(t *testing.T) {
	out, _ := runDemo(t, "normalize", "--measure", "rt", "--subject", "subject", writeCSV(t))

	norm, err := out.Float64s("rt_norm")
	require.NoError(t, err)
	require.Equal(t, []float64{155, 175, 145, 185}, norm)
}

func TestOutliersReport(t *testing.T) {
	out, _ := runDemo(t, "outliers", "--measure", "rt", "--by", "cond", "--sd", "0.5", writeCSV(t))

	require.Equal(t, []string{"cond", "n", "removed", "lower", "upper"}, out.Names())
	removed, err := out.Float64s("removed")
	require.NoError(t, err)
	require.Equal(t, []float64{2, 2}, removed)
}

func TestOutliersOut(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "clean.csv")
	var stdout, stderr bytes.Buffer

	err := run([]string{"outliers", "--measure", "rt", "--by", "cond", "--out", dst, writeCSV(t)}, &stdout, &stderr)
	require.NoError(t, err)
	require.Empty(t, stdout.String())

	// Each value lies 50 from its condition mean, inside one sd of 70.7
	clean, err := table.LoadCSV(dst, nil)
	require.NoError(t, err)
	require.Equal(t, 4, clean.Len())
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rt.csv"), []byte(reactionTimes), 0o644))
	analysis := `
[data]
file = "rt.csv"
strings = ["subject"]

[summary]
measures = ["rt"]
within = ["cond"]
subject = ["subject"]

[log]
level = "warn"
`
	cfgPath := filepath.Join(dir, "analysis.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(analysis), 0o644))

	out, logs := runDemo(t, "summarize", "--config", cfgPath)
	require.Equal(t, 2, out.Len())
	require.True(t, out.Has("rt_norm_ci"))
	require.Empty(t, strings.TrimSpace(logs), "warn level hides info records")
}

func TestOutliersMeasureFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rt.csv"), []byte(reactionTimes), 0o644))
	cfgPath := filepath.Join(dir, "analysis.toml")
	analysis := "[data]\nfile = \"rt.csv\"\n\n[outlier]\nmeasure = \"rt\"\nby = [\"cond\"]\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(analysis), 0o644))

	out, _ := runDemo(t, "outliers", "--config", cfgPath)
	require.Equal(t, 2, out.Len())

	var stdout, stderr bytes.Buffer
	err := run([]string{"summarize", "--config", cfgPath}, &stdout, &stderr)
	require.Error(t, err, "summarize still needs summary.measures")
}

func TestErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"no measure", []string{"summarize", "x.csv"}},
		{"no outlier measure", []string{"outliers", "x.csv"}},
		{"normalize without measure", []string{"normalize", "--subject", "subject", "x.csv"}},
		{"no file", []string{"summarize", "--measure", "rt"}},
		{"missing file", []string{"summarize", "--measure", "rt", "nope.csv"}},
		{"bad method", []string{"outliers", "--measure", "rt", "--method", "mad", "x.csv"}},
		{"missing column", []string{"summarize", "--measure", "nope", "--group", "cond", "REPLACE"}},
	}

	path := writeCSV(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := make([]string, len(tc.args))
			for i, a := range tc.args {
				if a == "REPLACE" {
					a = path
				}
				args[i] = a
			}
			var stdout, stderr bytes.Buffer
			if err := run(args, &stdout, &stderr); err == nil {
				t.Errorf("Expected an error for %v", args)
			}
		})
	}
}

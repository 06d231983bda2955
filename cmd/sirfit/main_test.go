package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/epidemic/pkg/scenario"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const guineaReport = `{
  "data": [
    {"week": "2014-W01", "source": "Patient database", "case_definition": "Confirmed", "value": 4},
    {"week": "2014-W01", "source": "Patient database", "case_definition": "Probable", "value": 2},
    {"week": "2014-W02", "source": "Patient database", "case_definition": "Confirmed", "value": 9},
    {"week": "2014-W02", "source": "Patient database", "case_definition": "Probable", "value": 0},
    {"week": "2014-W02", "source": "Situation report", "case_definition": "Confirmed", "value": 100}
  ]
}`

// importGuinea stores guineaReport in a fresh database and returns its path.
func importGuinea(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	db := filepath.Join(dir, "reports.db")
	file := filepath.Join(dir, "guinea_weekly.json")
	require.NoError(t, os.WriteFile(file, []byte(guineaReport), 0o644))

	out, err := execute(t, "--db", db, "reports", "import", "--country", "Guinea", file)
	require.NoError(t, err)
	assert.Equal(t, "imported Guinea/guinea_weekly.json: 5 entries\n", out)
	return db
}

func TestSimulate_CustomCSV(t *testing.T) {
	out, err := execute(t, "simulate",
		"--population", "1000", "--days", "10", "--contact-rate", "0.3", "--recovery-rate", "0.1",
		"--every", "5", "-m", "1", "--format", "csv", "--summary=false")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4, out)
	assert.Equal(t, "label,s,i,r", lines[0])
	assert.Equal(t, "0,999,1,0", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "5,"))
	assert.True(t, strings.HasPrefix(lines[3], "10,"))
}

func TestSimulate_DefaultScenariosWithSummary(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "simulate", "--every", "100", "--format", "table",
		"--json", filepath.Join(dir, "run.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "non-vital summary")
	assert.Contains(t, out, "vital summary")
	assert.Contains(t, out, "12,720,001")
	assert.Contains(t, out, "births / deaths: 37.2 / 8.7")

	assert.FileExists(t, filepath.Join(dir, "run-non-vital.json"))
	assert.FileExists(t, filepath.Join(dir, "run-vital.json"))
}

func TestSimulate_ScenarioFromFile(t *testing.T) {
	f := scenario.Default()
	f.Scenarios = []scenario.Scenario{{
		Name: "small", Variant: "non-vital", Population: 100, Days: 5,
		ContactRate: 5, MeanRecoveryRate: 0.1, Magnitude: "1",
	}}
	data, err := f.Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, "-c", path, "simulate", "-S", "small", "--every", "1", "--format", "csv", "--summary=false")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "0,99,1,0", lines[1])
	for _, l := range lines[1:] {
		assert.NotContains(t, l, ",-", "negative compartment in %q", l)
	}
}

func TestSimulate_Errors(t *testing.T) {
	for name, args := range map[string][]string{
		"unknown scenario": {"simulate", "-S", "nope"},
		"zero population":  {"simulate", "--population", "0"},
		"zero contact":     {"simulate", "--contact-rate", "0"},
		"bad format":       {"simulate", "--format", "svg"},
		"bad every":        {"simulate", "--every", "0"},
		"bad magnitude":    {"simulate", "--magnitude=-3"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestReports_ListShowDelete(t *testing.T) {
	db := importGuinea(t)

	out, err := execute(t, "--db", db, "reports", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "guinea_weekly.json")
	assert.Contains(t, out, "Guinea")

	out, err = execute(t, "--db", db, "reports", "show",
		"--country", "Guinea", "--collection", "guinea_weekly.json", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "Weeks,Probable cases,Confirmed cases\n2014-W01,2,4\n2014-W02,0,9\n\n", out)

	out, err = execute(t, "--db", db, "reports", "show", "--all", "--sums", "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Guinea Sum")

	_, err = execute(t, "--db", db, "reports", "delete", "--country", "Guinea", "--collection", "guinea_weekly.json")
	require.NoError(t, err)
	out, err = execute(t, "--db", db, "reports", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no reports")
}

func TestReports_ShowRequiresSelection(t *testing.T) {
	_, err := execute(t, "--db", filepath.Join(t.TempDir(), "r.db"), "reports", "show")
	assert.Error(t, err)
}

func TestCompare_Overlay(t *testing.T) {
	db := importGuinea(t)
	html := filepath.Join(t.TempDir(), "out", "compare.html")

	out, err := execute(t, "--db", db, "compare",
		"--country", "Guinea", "--collection", "guinea_weekly.json",
		"-m", "1", "--format", "csv", "--html", html)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "label,s,i,r,Confirmed cases", lines[0])
	assert.Equal(t, "2014-W01,12720000,1,0,4", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2014-W02,"))
	assert.True(t, strings.HasSuffix(lines[2], ",9"))
	assert.True(t, strings.HasPrefix(lines[3], "day 14,"))
	assert.FileExists(t, html)
}

func TestCompare_Errors(t *testing.T) {
	db := importGuinea(t)
	base := []string{"--db", db, "compare", "--country", "Guinea", "--collection", "guinea_weekly.json"}

	_, err := execute(t, append(base, "--case", "suspected")...)
	assert.Error(t, err)
	_, err = execute(t, append(base, "--ema", "2")...)
	assert.Error(t, err)
	_, err = execute(t, append(base, "-S", "missing")...)
	assert.Error(t, err)
	_, err = execute(t, "--db", db, "compare", "--country", "Guinea", "--collection", "liberia_weekly.json")
	assert.Error(t, err)
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "out/run.csv", withSuffix("out/run.csv", ""))
	assert.Equal(t, "out/run-non-vital.csv", withSuffix("out/run.csv", "non-vital"))
	assert.Equal(t, "run-guinea-conakry.html", withSuffix("run.html", "Guinea Conakry"))
}

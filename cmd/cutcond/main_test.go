package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/cutcond/internal/config"
	"github.com/ja7ad/cutcond/pkg/catalog"
	"github.com/ja7ad/cutcond/pkg/condition"
	"github.com/ja7ad/cutcond/pkg/types"
)

func testConfig() config.Config {
	return config.Config{
		CatalogPath:     filepath.Join("..", "..", "pkg", "catalog", "testdata", "conditions.json"),
		MachinePath:     filepath.Join("..", "..", "pkg", "capacity", "testdata", "machine_capacities.json"),
		MaxPower:        14.9,
		MaxTorque:       95,
		PowerWarning:    0.8,
		TorqueWarning:   0.8,
		EngagementRatio: 0.7,
		LogLevel:        "error",
		LogFormat:       "text",
		Workers:         2,
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(testConfig())
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTools_ListsCatalogue(t *testing.T) {
	out, err := run(t, "tools")
	require.NoError(t, err)

	for _, id := range []string{"CNMG 12 04 08-PM 4325", "N123G2-0300-0001-CF 1125", "CCMT 09 T3 04-PM 4325", "R840-1000-30-A0A 1220"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "drilling")
	assert.Contains(t, out, "boring")
	assert.Contains(t, out, "insert width used as ap")
}

func TestCalc_Drilling(t *testing.T) {
	out, err := run(t, "calc", "--tool", "R840-1000-30-A0A 1220")
	require.NoError(t, err)

	assert.Contains(t, out, "Fa (N)")
	assert.Contains(t, out, "400.0")
	assert.Contains(t, out, "3183.1")
	assert.NotContains(t, out, "La (mm)")
}

func TestCalc_WarnsOnOverriddenFlags(t *testing.T) {
	out, err := run(t, "--log-level", "warn", "calc", "--tool", "R840-1000-30-A0A 1220", "--y0", "5", "--kr", "90")
	require.NoError(t, err)

	assert.Contains(t, out, "flag=y0")
	assert.NotContains(t, out, "flag=kr")
}

func TestParamFlags_Ignored(t *testing.T) {
	cmd := &cobra.Command{}
	var pf paramFlags
	pf.register(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--y0", "10", "--kr", "45", "--kc1", "400"}))

	r := condition.Result{Kr: 90, Y0: 20, M0: 0.25, Kc1: 400}
	assert.Equal(t, []string{"kr", "y0"}, pf.ignored(cmd, r))

	r = condition.Result{Kr: 45, Y0: 10, M0: 0.25, Kc1: 400}
	assert.Empty(t, pf.ignored(cmd, r))
}

func TestCalc_UnknownTool(t *testing.T) {
	_, err := run(t, "calc", "--tool", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cutcond tools")
}

func TestCalc_DomainError(t *testing.T) {
	_, err := run(t, "calc", "--tool", "CNMG 12 04 08-PM 4325", "--d", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")
}

func TestCalc_ExportsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "history.csv")
	_, err := run(t, "calc", "--tool", "CNMG 12 04 08-PM 4325", "--vc", "250", "--csv", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "CNMG 12 04 08-PM 4325")
	assert.Contains(t, lines[1], ",250,")
}

func TestBatch_MixedOutcomes(t *testing.T) {
	dir := t.TempDir()
	jobs := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(jobs, []byte(`jobs:
  - id: drill
    tool: "R840-1000-30-A0A 1220"
  - id: broken
    tool: "CNMG 12 04 08-PM 4325"
    d: 0
  - tool: "CCMT 09 T3 04-PM 4325"
    ap: 2
`), 0o644))
	report := filepath.Join(dir, "report.json")

	out, err := run(t, "batch", jobs, "--json", report)
	require.NoError(t, err)

	assert.Contains(t, out, "drill")
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "job-3")

	raw, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(raw), `"tool":`))
}

func TestBatch_UnknownTool(t *testing.T) {
	jobs := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(jobs, []byte(`{"jobs": [{"tool": "missing"}]}`), 0o644))

	_, err := run(t, "batch", jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job 1")
}

func TestBatch_RejectsUnknownJobKey(t *testing.T) {
	jobs := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(jobs, []byte(`jobs:
  - tool: "CNMG 12 04 08-PM 4325"
    vC: 300
`), 0o644))

	_, err := run(t, "batch", jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vC")
}

func TestMachine_Interpolates(t *testing.T) {
	out, err := run(t, "machine", "--n", "2750")
	require.NoError(t, err)

	assert.Contains(t, out, "At n=2750 rpm: 14.90 kW, 65.30 Nm")
	assert.Contains(t, out, "alpha")
}

func TestMachine_OutsideRange(t *testing.T) {
	out, err := run(t, "machine", "--n", "9000")
	require.NoError(t, err)
	assert.Contains(t, out, "At n=9000 rpm: 14.90 kW, 95.00 Nm")
	assert.Contains(t, out, "maxima used")
}

func TestBatchJob_Params(t *testing.T) {
	vc, kr := 180.0, 45.0
	j := batchJob{Vc: &vc, Kr: &kr}

	p := j.params(toolFixture())
	assert.Equal(t, 180.0, p.Vc)
	assert.Equal(t, types.Degrees(45), p.Kr)
	assert.Equal(t, 0.3, p.Fn)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	l, err := newLogger(&buf, "warn", "json")
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "ok", status(condition.Result{}))
	assert.Equal(t, "near limit", status(condition.Result{Flags: condition.Flags{PowerNearLimit: true}}))
	assert.Equal(t, "OVER LIMIT", status(condition.Result{Flags: condition.Flags{TorqueExceeded: true, PowerNearLimit: true}}))
}

func toolFixture() catalog.Tool {
	return catalog.Tool{
		ID:        "CNMG",
		Operation: "Tournage extérieur",
		Fn:        catalog.Range{Min: 0.15, Max: 0.5, Rec: 0.3},
		Vc:        catalog.Range{Min: 200, Max: 450, Rec: 320},
		Ap:        &catalog.Range{Min: 0.5, Max: 5.5, Rec: 2},
	}
}

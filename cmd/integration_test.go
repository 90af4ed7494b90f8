package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so Changed state and
// slice values do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd runs the root command with args and returns stdout and the error.
func execCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

// isolateHome points HOME at a temp dir so no user config is read.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

// peopleCSV has a dominated Gender column and a roughly uniform Score column.
func peopleCSV() string {
	var b strings.Builder
	b.WriteString("Gender,Score,City\n")
	for i := 0; i < 100; i++ {
		g := "M"
		if i%5 == 0 {
			g = "F"
		}
		city := []string{"Oslo", "Rome", "Lima", "Kyiv"}[i%4]
		b.WriteString(g + "," + strconv.Itoa(i) + "," + city + "\n")
	}
	return b.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCLI_AnalyzeExportContainsBiasMarker(t *testing.T) {
	home := isolateHome(t)
	data := filepath.Join(home, "people.csv")
	writeFile(t, data, peopleCSV())
	outPath := filepath.Join(home, "reports", "people.txt")

	out := runCmd(t, "analyze", data, "-c", "Gender,Score", "-o", outPath)
	if !strings.Contains(out, "Wrote report to") {
		t.Fatalf("expected confirmation, got %q", out)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	text := string(b)
	if !strings.HasPrefix(text, "=== BIAS REPORT ===") {
		t.Fatalf("missing header:\n%s", text)
	}
	if !strings.Contains(text, "POTENTIAL BIAS") {
		t.Fatalf("expected bias marker:\n%s", text)
	}
	if strings.Index(text, "Column: Gender") > strings.Index(text, "Column: Score") {
		t.Fatalf("columns out of order:\n%s", text)
	}
}

func TestCLI_AnalyzeStdoutAndJSON(t *testing.T) {
	home := isolateHome(t)
	data := filepath.Join(home, "people.csv")
	writeFile(t, data, peopleCSV())

	out := runCmd(t, "analyze", data, "-c", "City", "--format", "json")
	if !strings.Contains(out, `"column": "City"`) || !strings.Contains(out, `"kind": "categorical"`) {
		t.Fatalf("unexpected json:\n%s", out)
	}
	if !strings.Contains(out, `"biased": false`) {
		t.Fatalf("uniform City should not be flagged:\n%s", out)
	}
}

func TestCLI_AnalyzeFailOnBias(t *testing.T) {
	home := isolateHome(t)
	data := filepath.Join(home, "people.csv")
	writeFile(t, data, peopleCSV())

	if _, err := execCmd(t, "analyze", data, "-c", "Gender", "--fail-on-bias"); err == nil {
		t.Fatalf("expected error for flagged column")
	}
	if _, err := execCmd(t, "analyze", data, "-c", "City", "--fail-on-bias"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCLI_AnalyzeRequiresSelection(t *testing.T) {
	home := isolateHome(t)
	data := filepath.Join(home, "people.csv")
	writeFile(t, data, peopleCSV())

	if _, err := execCmd(t, "analyze", data); err == nil {
		t.Fatalf("expected error with no columns selected")
	}
	_, err := execCmd(t, "analyze", data, "-c", "Salary")
	if err == nil || !strings.Contains(err.Error(), "Salary") {
		t.Fatalf("expected unknown column error, got %v", err)
	}
}

func TestCLI_Columns(t *testing.T) {
	home := isolateHome(t)
	data := filepath.Join(home, "people.csv")
	writeFile(t, data, peopleCSV())

	out := runCmd(t, "columns", data)
	for _, want := range []string{"100 rows, 3 columns", "- Gender: text", "- Score: numeric", "distinct 4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := isolateHome(t)
	cfgPath := filepath.Join(home, "biasscan.yaml")

	runCmd(t, "--config", cfgPath, "config", "set", "workers", "8")
	runCmd(t, "--config", cfgPath, "config", "set", "report_format", "json")
	out := runCmd(t, "--config", cfgPath, "config", "show")
	if !strings.Contains(out, "workers: 8") || !strings.Contains(out, "report_format: json") {
		t.Fatalf("unexpected config:\n%s", out)
	}
	if _, err := execCmd(t, "--config", cfgPath, "config", "set", "workers", "zero"); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := execCmd(t, "--config", cfgPath, "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestCLI_ConfigMaxRowsZeroIsUnlimited(t *testing.T) {
	home := isolateHome(t)
	var b strings.Builder
	b.WriteString("v\n")
	for i := 0; i < 100005; i++ {
		b.WriteString(strconv.Itoa(i % 50))
		b.WriteString("\n")
	}
	data := filepath.Join(home, "big.csv")
	writeFile(t, data, b.String())

	runCmd(t, "config", "set", "max_rows", "0")
	out := runCmd(t, "columns", data)
	if !strings.Contains(out, "100005 rows") || !strings.Contains(out, "non-missing 100005") {
		t.Fatalf("expected every row loaded:\n%s", out)
	}
	if strings.Contains(out, "MaxRows") {
		t.Fatalf("unexpected truncation warning:\n%s", out)
	}

	// The --max-rows flag still overrides the config.
	out = runCmd(t, "columns", data, "--max-rows", "10")
	if !strings.Contains(out, "processed only 10/100005 rows") {
		t.Fatalf("expected flag override:\n%s", out)
	}
}

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/biasscan-cli/internal/bias"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadCSV_InfersTypesAndMissing(t *testing.T) {
	p := writeFile(t, "people.csv", strings.Join([]string{
		"name,age,gender,income",
		"Ann,34,F,52000",
		"Bob,NA,M,",
		"Cid,29,,48000.5",
		"Dee,41,F,N/A",
	}, "\n"))

	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.Name != "people.csv" || tab.Rows != 4 || tab.Loaded != 4 {
		t.Fatalf("unexpected table header: %+v", tab)
	}
	want := map[string]bias.ValueType{
		"name":   bias.TextType,
		"age":    bias.NumericType,
		"gender": bias.TextType,
		"income": bias.NumericType,
	}
	for name, typ := range want {
		c, ok := tab.Column(name)
		if !ok {
			t.Fatalf("missing column %s", name)
		}
		if c.Type != typ {
			t.Errorf("column %s: type %v, want %v", name, c.Type, typ)
		}
	}
	info := tab.Describe()
	if info[1].Missing != 1 || info[1].NonMissing != 3 {
		t.Errorf("age counts: %+v", info[1])
	}
	if info[2].Missing != 1 || info[2].Distinct != 2 {
		t.Errorf("gender counts: %+v", info[2])
	}
	if info[3].Missing != 2 {
		t.Errorf("income missing: %+v", info[3])
	}
	income, _ := tab.Column("income")
	if x, ok := income.Values[2].Float(); !ok || x != 48000.5 {
		t.Errorf("income[2] = %v, %v", x, ok)
	}
}

func TestLoadCSV_SniffsSemicolonAndLocaleNumbers(t *testing.T) {
	p := writeFile(t, "scores.csv", "Group;Score\nA;10,5\nB;1.000,25\n")
	opt := DefaultOptions()
	opt.DecimalSeparator = ','
	opt.ThousandsSeparator = '.'
	tab, err := Load(p, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	score, ok := tab.Column("score")
	if !ok {
		t.Fatalf("case-insensitive lookup failed: %v", tab.Names())
	}
	if score.Type != bias.NumericType {
		t.Fatalf("score should be numeric")
	}
	if x, _ := score.Values[1].Float(); x != 1000.25 {
		t.Fatalf("score[1] = %v, want 1000.25", x)
	}
}

func TestLoadTSV(t *testing.T) {
	p := writeFile(t, "data.tsv", "a\tb\n1\tx\n2\ty\n")
	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := strings.Join(tab.Names(), ","); got != "a,b" {
		t.Fatalf("names = %s", got)
	}
}

func TestLoadCSV_MaxRows(t *testing.T) {
	p := writeFile(t, "big.csv", "v\n1\n2\n3\n4\n5\n")
	opt := DefaultOptions()
	opt.MaxRows = 3
	tab, err := Load(p, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.Rows != 5 || tab.Loaded != 3 || len(tab.Columns[0].Values) != 3 {
		t.Fatalf("rows=%d loaded=%d values=%d", tab.Rows, tab.Loaded, len(tab.Columns[0].Values))
	}
	if len(tab.Warnings) != 1 || !strings.Contains(tab.Warnings[0], "3/5") {
		t.Fatalf("warnings = %v", tab.Warnings)
	}
}

func TestLoadCSV_HeaderNames(t *testing.T) {
	p := writeFile(t, "dups.csv", "\uFEFFid,x,x,,x\n1,2,3,4,5\n")
	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := "id,x,x.1,Unnamed: 3,x.2"
	if got := strings.Join(tab.Names(), ","); got != want {
		t.Fatalf("names = %q, want %q", got, want)
	}
}

func TestLoadCSV_RaggedRowsArePadded(t *testing.T) {
	p := writeFile(t, "ragged.csv", "a,b,c\n1,2\n3,4,5\n")
	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c, _ := tab.Column("c")
	if !c.Values[0].IsMissing() {
		t.Fatalf("padded cell should be missing")
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist LoadError, got %v", err)
	}

	p := writeFile(t, "doc.pdf", "%PDF")
	if _, err := Load(p, DefaultOptions()); !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad for unsupported type, got %v", err)
	}

	bad := writeFile(t, "bad.csv", "a,b\n\"unterminated,1\n")
	if _, err := Load(bad, DefaultOptions()); !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad for malformed csv, got %v", err)
	}
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	p := writeFile(t, "empty.csv", "")
	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tab.Columns) != 0 {
		t.Fatalf("expected no columns")
	}
}

func TestLoadCSV_CommaGroupedThousands(t *testing.T) {
	p := writeFile(t, "sales.csv", "amount\n\"1,000\"\n\"1,000,000\"\n250\n")
	tab, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	amount, _ := tab.Column("amount")
	if amount.Type != bias.NumericType {
		t.Fatalf("amount should be numeric")
	}
	for i, want := range []float64{1000, 1e6, 250} {
		if x, _ := amount.Values[i].Float(); x != want {
			t.Errorf("amount[%d] = %v, want %v", i, x, want)
		}
	}
}

package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "report.txt")
	if err := SafeWriteFile(p, []byte("hello")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "hello" {
		t.Fatalf("read back %q, %v", b, err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	first := UniquePath(dir, "metrics", ".bias.txt")
	if filepath.Base(first) != "metrics.bias.txt" {
		t.Fatalf("first = %s", first)
	}
	if err := os.WriteFile(first, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	second := UniquePath(dir, "metrics", ".bias.txt")
	if filepath.Base(second) != "metrics__2.bias.txt" {
		t.Fatalf("second = %s", second)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := ExpandHome("~/reports")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "reports") {
		t.Fatalf("got %s", got)
	}
	if got, _ := ExpandHome("/abs"); got != "/abs" {
		t.Fatalf("got %s", got)
	}
}

func TestSafeBase(t *testing.T) {
	tests := map[string]string{
		"Q3 Survey_Data": "q3-survey-data",
		"***":            "sheet",
		"Sheet1":         "sheet1",
	}
	for in, want := range tests {
		if got := SafeBase(in, "sheet"); got != want {
			t.Errorf("SafeBase(%q) = %q, want %q", in, got, want)
		}
	}
}

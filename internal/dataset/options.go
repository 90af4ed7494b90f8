package dataset

import (
	"fmt"
	"strings"
)

// Options controls how tabular sources are read.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited. Extra rows are counted but dropped.
	MaxRows int
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, strip the common separators that are not the decimal one
	// XLSX sheet selection. SheetName wins; SheetIndex is 1-based.
	SheetName  string
	SheetIndex int
	// MissingMarkers are cell values read as missing. Nil uses DefaultMissingMarkers.
	MissingMarkers []string
}

// DefaultMissingMarkers are the cell values treated as missing besides the empty cell.
var DefaultMissingMarkers = []string{
	"NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan", "null", "NULL", "None",
	"#N/A", "#NA", "<NA>",
}

// DefaultOptions returns reasonable defaults for loading a dataset.
func DefaultOptions() Options {
	return Options{
		MaxRows:    100000,
		SheetIndex: 1,
	}
}

func (o Options) missingSet() map[string]struct{} {
	markers := o.MissingMarkers
	if markers == nil {
		markers = DefaultMissingMarkers
	}
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[m] = struct{}{}
	}
	return set
}

// ParseDelimiter maps a user-facing delimiter name to a rune. Empty means auto-detect.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ','|';'|'tab')", s)
	}
}

// ParseDecimal maps a user-facing decimal separator name to a rune. Empty means auto-detect.
func ParseDecimal(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported decimal separator: %s (use '.'|'comma')", s)
	}
}

// ParseThousands maps a user-facing thousands separator name to a rune. Empty means auto-detect.
func ParseThousands(s string) (rune, error) {
	if s == " " {
		return ' ', nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ",":
		return ',', nil
	case ".":
		return '.', nil
	case "space":
		return ' ', nil
	case "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported thousands separator: %s (use ','|'.'|'space')", s)
	}
}

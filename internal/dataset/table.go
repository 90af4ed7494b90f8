package dataset

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/biasscan-cli/internal/bias"
)

// Table is a loaded dataset: typed columns in source order.
type Table struct {
	Name     string
	Rows     int // data rows seen in the source
	Loaded   int // data rows kept (bounded by Options.MaxRows)
	Columns  []*bias.Column
	Warnings []string
}

// ColumnInfo summarizes a column for selection.
type ColumnInfo struct {
	Name       string         `json:"name"`
	Type       bias.ValueType `json:"-"`
	TypeName   string         `json:"type"`
	NonMissing int            `json:"non_missing"`
	Missing    int            `json:"missing"`
	Distinct   int            `json:"distinct"`
}

// Names returns the column names in source order.
func (t *Table) Names() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Column looks a column up by exact name, then case-insensitively.
func (t *Table) Column(name string) (*bias.Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	key := strings.ToLower(strings.TrimSpace(name))
	for _, c := range t.Columns {
		if strings.ToLower(c.Name) == key {
			return c, true
		}
	}
	return nil, false
}

// Select returns the named columns in the order given. Duplicates are kept
// once. An empty selection or an unknown name yields *InvalidSelectionError.
func (t *Table) Select(names []string) ([]*bias.Column, error) {
	var cols []*bias.Column
	var unknown []string
	seen := map[*bias.Column]struct{}{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		c, ok := t.Column(n)
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}
	if len(unknown) > 0 {
		return nil, &InvalidSelectionError{Unknown: unknown, Available: t.Names()}
	}
	if len(cols) == 0 {
		return nil, &InvalidSelectionError{Available: t.Names()}
	}
	return cols, nil
}

// Describe reports type and counts for every column.
func (t *Table) Describe() []ColumnInfo {
	out := make([]ColumnInfo, len(t.Columns))
	for i, c := range t.Columns {
		info := ColumnInfo{Name: c.Name, Type: c.Type, TypeName: c.Type.String()}
		distinct := map[bias.Value]struct{}{}
		for _, v := range c.Values {
			if v.IsMissing() {
				info.Missing++
				continue
			}
			info.NonMissing++
			distinct[v] = struct{}{}
		}
		info.Distinct = len(distinct)
		out[i] = info
	}
	return out
}

// builder accumulates raw string records and types the columns once all rows
// are in: a column is numeric when every non-missing cell parses as a number.
type builder struct {
	opt     Options
	missing map[string]struct{}
	names   []string
	cells   [][]string
	table   *Table
}

func newBuilder(name string, header []string, opt Options) *builder {
	b := &builder{
		opt:     opt,
		missing: opt.missingSet(),
		names:   headerNames(header),
		table:   &Table{Name: name},
	}
	b.cells = make([][]string, len(b.names))
	return b
}

func (b *builder) add(rec []string) {
	b.table.Rows++
	if b.opt.MaxRows > 0 && b.table.Loaded >= b.opt.MaxRows {
		return
	}
	b.table.Loaded++
	for j := range b.names {
		v := ""
		if j < len(rec) {
			v = rec[j]
		}
		b.cells[j] = append(b.cells[j], v)
	}
}

func (b *builder) finish() *Table {
	t := b.table
	t.Columns = make([]*bias.Column, len(b.names))
	for j, name := range b.names {
		t.Columns[j] = b.typeColumn(name, b.cells[j])
	}
	if t.Loaded < t.Rows {
		t.Warnings = append(t.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", t.Loaded, t.Rows))
	}
	return t
}

func (b *builder) typeColumn(name string, raw []string) *bias.Column {
	nums := make([]float64, len(raw))
	miss := make([]bool, len(raw))
	numeric := true
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if _, ok := b.missing[s]; ok || s == "" {
			miss[i] = true
			continue
		}
		if !numeric {
			continue
		}
		x, ok := parseNumeric(s, b.opt)
		if !ok {
			numeric = false
			continue
		}
		nums[i] = x
	}
	col := &bias.Column{Name: name, Values: make([]bias.Value, len(raw))}
	if numeric {
		col.Type = bias.NumericType
	}
	for i, s := range raw {
		switch {
		case miss[i]:
			col.Values[i] = bias.Null()
		case numeric:
			col.Values[i] = bias.Num(nums[i])
		default:
			col.Values[i] = bias.Text(strings.TrimSpace(s))
		}
	}
	return col
}

// headerNames names blank headers "Unnamed: <i>" and suffixes duplicates
// with ".1", ".2", ...
func headerNames(header []string) []string {
	out := make([]string, len(header))
	seen := map[string]int{}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for {
			n, dup := seen[name]
			if !dup {
				break
			}
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", h, n+1)
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

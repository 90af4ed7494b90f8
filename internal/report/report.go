package report

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/KaramelBytes/biasscan-cli/internal/bias"
	"github.com/KaramelBytes/biasscan-cli/internal/logging"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Header opens every text report.
const Header = "=== BIAS REPORT ==="

// BiasMarker is the literal line printed under a flagged column.
const BiasMarker = "POTENTIAL BIAS"

// Options controls report assembly.
type Options struct {
	// Workers bounds concurrent column analyses; <= 0 uses GOMAXPROCS.
	Workers int
}

// Failure records a column that could not be analyzed.
type Failure struct {
	Column string `json:"column"`
	Err    error  `json:"-"`
}

// MarshalJSON renders the error as a string.
func (f Failure) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Column string `json:"column"`
		Error  string `json:"error"`
	}{f.Column, msg})
}

// Report is the outcome of analyzing a selection of columns. Results and
// Failures keep the caller's column order.
type Report struct {
	ID          string         `json:"id"`
	Source      string         `json:"source,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Results     []*bias.Result `json:"results"`
	Failures    []Failure      `json:"failures,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// Build analyzes cols and collects results. A column that fails analysis is
// recorded as a Failure and the rest continue; only ctx cancellation aborts.
func Build(ctx context.Context, source string, cols []*bias.Column, opt Options) (*Report, error) {
	log := logging.Get().With(zap.String("source", source))
	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*bias.Result, len(cols))
	errs := make([]error, len(cols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, col := range cols {
		i, col := i, col
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := bias.Analyze(col)
			if err != nil {
				errs[i] = err
				log.Info("column skipped", zap.String("column", col.Name), zap.Error(err))
				return nil
			}
			results[i] = res
			log.Debug("column analyzed",
				zap.String("column", col.Name),
				zap.Stringer("kind", res.Kind),
				zap.Bool("biased", res.Biased),
				zap.Duration("took", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	rep := &Report{ID: uuid.NewString(), Source: source, GeneratedAt: time.Now().UTC()}
	for i, col := range cols {
		if errs[i] != nil {
			rep.Failures = append(rep.Failures, Failure{Column: col.Name, Err: errs[i]})
			continue
		}
		rep.Results = append(rep.Results, results[i])
	}
	return rep, nil
}

// BiasedColumns lists the names of flagged columns in report order.
func (r *Report) BiasedColumns() []string {
	var out []string
	for _, res := range r.Results {
		if res.Biased {
			out = append(out, res.Column)
		}
	}
	return out
}

// Empty reports whether nothing was analyzed or skipped.
func (r *Report) Empty() bool {
	return r == nil || (len(r.Results) == 0 && len(r.Failures) == 0)
}

// EmptyColumns lists skipped columns that held only missing values.
func (r *Report) EmptyColumns() []string {
	var out []string
	for _, f := range r.Failures {
		if errors.Is(f.Err, bias.ErrEmptyColumn) {
			out = append(out, f.Column)
		}
	}
	return out
}

// Text renders the plain-text report. The output depends only on the results,
// so re-running an analysis yields the same text.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	if r.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", r.Source)
	}
	b.WriteString("\n")
	for _, res := range r.Results {
		writeColumn(&b, res)
		b.WriteString("\n")
	}
	if len(r.Failures) > 0 {
		b.WriteString("Skipped:\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, " - %s: %v\n", f.Column, f.Err)
		}
		b.WriteString("\n")
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "Note: %s\n", w)
	}
	fmt.Fprintf(&b, "Flagged: %d of %d analyzed column(s)\n", len(r.BiasedColumns()), len(r.Results))
	return b.String()
}

func writeColumn(b *strings.Builder, res *bias.Result) {
	fmt.Fprintf(b, "Column: %s\n", res.Column)
	fmt.Fprintf(b, "Type: %s\n", res.Kind)
	b.WriteString("Distribution:\n")
	for _, s := range res.Distribution {
		fmt.Fprintf(b, " - %s: %.2f%%\n", s.Label, s.Percent)
	}
	switch res.Kind {
	case bias.Categorical:
		fmt.Fprintf(b, "Entropy: %.2f\n", res.Entropy())
		fmt.Fprintf(b, "Relative entropy: %.2f\n", res.RelativeEntropy())
	case bias.Numeric:
		fmt.Fprintf(b, "Skew: %.2f\n", res.Skew())
	}
	if res.Biased {
		b.WriteString(BiasMarker)
		b.WriteString("\n")
		for _, reason := range res.Reasons {
			fmt.Fprintf(b, " * %s\n", reason)
		}
	}
}

// JSON renders the report, including its id and timestamp, as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return b, nil
}

// Render returns the report in the named format: "text" (default) or "json".
func (r *Report) Render(format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "txt":
		return []byte(r.Text()), nil
	case "json":
		return r.JSON()
	default:
		return nil, fmt.Errorf("unsupported report format: %s (use text|json)", format)
	}
}

package table

import (
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

var (
	floatRe = regexp.MustCompile(`^\s*-?(\d*\.\d+)$`)
	intRe   = regexp.MustCompile(`^\s*-?(\d+)$`)
	boolRe  = regexp.MustCompile(`(?i)^\s*(true|false)$`)
)

// classify assigns a cell its type code. Only the truly empty string
// is Null; whitespace-only cells are Any. Integer and float widths are
// resolved by attempting the narrow parse first; integers too large
// for int64 degrade to Float64, and failing that to Any.
func classify(cell string) Code {
	if cell == "" {
		return Null
	}
	trimmed := strings.TrimSpace(cell)
	switch {
	case intRe.MatchString(cell):
		if _, err := strconv.ParseInt(trimmed, 10, 32); err == nil {
			return Int32
		}
		if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return Int64
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Float64
		}
		return Any
	case floatRe.MatchString(cell):
		if _, err := strconv.ParseFloat(trimmed, 32); err == nil {
			return Float32
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Float64
		}
		return Any
	case boolRe.MatchString(cell):
		return Bool
	default:
		return Any
	}
}

// InferColumns assigns each column the max code over a sample of the
// first sample rows (at least one). Columns are classified in parallel
// and the result is also stored on the table.
func InferColumns(t *Table, sample int) []Column {
	if sample < 1 {
		sample = 1
	}
	if sample > len(t.Rows) {
		sample = len(t.Rows)
	}

	cols := make([]Column, t.NumCols())
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range cols {
		i := i
		g.Go(func() error {
			code := Null
			for _, row := range t.Rows[:sample] {
				if i >= len(row) {
					continue
				}
				if c := classify(row[i]); c > code {
					code = c
				}
			}
			cols[i] = Column{Name: t.ColumnName(i), Code: code}
			return nil
		})
	}
	// The workers only classify; they cannot fail.
	_ = g.Wait()

	t.Columns = cols
	return cols
}

// DetectHeader reports whether first looks like a header row: every
// cell is non-empty text while the following record carries at least
// one typed (non-text) cell.
func DetectHeader(first, second []string) bool {
	if len(first) == 0 || second == nil {
		return false
	}
	for _, cell := range first {
		if classify(cell) != Any {
			return false
		}
	}
	for _, cell := range second {
		c := classify(cell)
		if c != Any && c != Null {
			return true
		}
	}
	return false
}

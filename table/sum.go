package table

import (
	"fmt"
	"strconv"
	"strings"
)

// SumColumn sums the named column and returns the result formatted as
// a string. Integer columns accumulate in int64 and promote to float64
// on overflow; float columns accumulate in float64. Empty cells are
// skipped. Columns must have been inferred first.
func SumColumn(t *Table, name string) (string, error) {
	if t.Columns == nil {
		InferColumns(t, len(t.Rows))
	}

	idx := t.ColumnIndex(name)
	if idx < 0 {
		return "", fmt.Errorf("no column named %q", name)
	}
	code := t.Columns[idx].Code
	if !code.Numeric() {
		return "", fmt.Errorf("column %q is %s, not numeric", name, code)
	}

	useFloat := code >= Float32
	var isum int64
	var fsum float64
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[idx])
		if cell == "" {
			continue
		}
		if !useFloat {
			v, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return "", fmt.Errorf("column %q: %w", name, err)
			}
			sum, ok := addInt64(isum, v)
			if !ok {
				useFloat = true
				fsum = float64(isum) + float64(v)
				continue
			}
			isum = sum
		} else {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return "", fmt.Errorf("column %q: %w", name, err)
			}
			fsum += v
		}
	}

	if useFloat {
		return strconv.FormatFloat(fsum, 'f', -1, 64), nil
	}
	return strconv.FormatInt(isum, 10), nil
}

// addInt64 adds with overflow detection.
func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

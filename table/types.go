package table

import "fmt"

// Code identifies the narrowest type every sampled value of a column
// fits. Codes are ordered so that a column's code is simply the max
// over its cell codes.
type Code int

const (
	Null Code = iota
	Bool
	Int32
	Int64
	Float32
	Float64
	Any
)

func (c Code) String() string {
	switch c {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Any:
		return "any"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Affinity returns the SQLite column type used on export.
func (c Code) Affinity() string {
	switch c {
	case Bool, Int32, Int64:
		return "INTEGER"
	case Float32, Float64:
		return "REAL"
	default:
		return "TEXT"
	}
}

// Numeric reports whether columns of this code can be summed.
func (c Code) Numeric() bool {
	return c >= Int32 && c <= Float64
}

// Column pairs a column name with its inferred code.
type Column struct {
	Name string
	Code Code
}

// Table is a fully parsed CSV file.
type Table struct {
	Header    []string
	Rows      [][]string
	Columns   []Column // populated by InferColumns
	HasHeader bool
}

// NumCols returns the column count: the header width, or the widest
// row for headerless files.
func (t *Table) NumCols() int {
	n := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// ColumnName returns the header name for column i, or a positional
// name for headerless files.
func (t *Table) ColumnName(i int) string {
	if t.HasHeader && i < len(t.Header) {
		return t.Header[i]
	}
	return fmt.Sprintf("col%d", i+1)
}

// ColumnIndex finds a column by name, accepting positional names for
// headerless files. Returns -1 when not found.
func (t *Table) ColumnIndex(name string) int {
	for i := 0; i < t.NumCols(); i++ {
		if t.ColumnName(i) == name {
			return i
		}
	}
	return -1
}

package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultChunkSize is the number of rows emitted per chunk.
const DefaultChunkSize = 1024

// HeaderMode controls whether the first record is treated as a header.
type HeaderMode int

const (
	HeaderAuto HeaderMode = iota
	HeaderOn
	HeaderOff
)

// ParseOptions configures a parse run. The zero value selects comma
// delimited input, automatic header detection and DefaultChunkSize.
type ParseOptions struct {
	Delimiter rune
	ChunkSize int
	Header    HeaderMode

	// Progress, when non-nil, receives the raw bytes consumed from the
	// file. Plain-mode commands plug a progress bar in here.
	Progress io.Writer
}

func (o ParseOptions) withDefaults() ParseOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	return o
}

// countingReader tracks bytes consumed so progress can be derived from
// the file size, optionally teeing them to a progress writer.
type countingReader struct {
	r    io.Reader
	tee  io.Writer
	read int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.read += int64(n)
	if cr.tee != nil && n > 0 {
		// Progress display is best-effort; a failed write must not
		// interrupt the parse.
		_, _ = cr.tee.Write(p[:n])
	}
	return n, err
}

// ParseChunks reads path chunk by chunk. onHeader, if non-nil, is
// called once as soon as the column names are established, with
// hasHeader reporting whether they come from a real header row;
// onChunk, if non-nil, receives each batch of rows together with the
// progress percentage after reading it. The returned table holds all
// rows.
func ParseChunks(path string, opts ParseOptions, onHeader func(columns []string, hasHeader bool), onChunk func(rows [][]string, progress float64)) (*Table, error) {
	opts = opts.withDefaults()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size := fi.Size()

	cr := &countingReader{r: f, tee: opts.Progress}
	r := csv.NewReader(cr)
	r.Comma = opts.Delimiter
	r.FieldsPerRecord = -1

	t := &Table{}

	// Header resolution needs the first record, and in auto mode the
	// one after it as well.
	first, err := r.Read()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var pending [][]string
	switch opts.Header {
	case HeaderOn:
		t.HasHeader = true
		t.Header = first
	case HeaderOff:
		pending = append(pending, first)
	default:
		second, err := r.Read()
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if DetectHeader(first, second) {
			t.HasHeader = true
			t.Header = first
		} else {
			pending = append(pending, first)
		}
		if second != nil {
			pending = append(pending, second)
		}
	}

	if onHeader != nil {
		onHeader(columnNames(t, firstWidth(t, pending)), t.HasHeader)
	}

	progress := func() float64 {
		if size == 0 {
			return 100
		}
		p := float64(cr.read) / float64(size) * 100
		if p > 100 {
			p = 100
		}
		return p
	}

	chunk := pending
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		chunk = append(chunk, rec)
		if len(chunk) >= opts.ChunkSize {
			t.Rows = append(t.Rows, chunk...)
			if onChunk != nil {
				onChunk(chunk, progress())
			}
			chunk = nil
		}
	}
	if len(chunk) > 0 {
		t.Rows = append(t.Rows, chunk...)
		if onChunk != nil {
			onChunk(chunk, progress())
		}
	}

	return t, nil
}

// Load parses the whole file without streaming callbacks.
func Load(path string, opts ParseOptions) (*Table, error) {
	return ParseChunks(path, opts, nil, nil)
}

// PackRows joins each row with the delimiter token, producing one
// transferable string per row.
func PackRows(rows [][]string, token string) []string {
	packed := make([]string, len(rows))
	for i, row := range rows {
		packed[i] = strings.Join(row, token)
	}
	return packed
}

// columnNames resolves the display names for width columns.
func columnNames(t *Table, width int) []string {
	if t.HasHeader {
		return t.Header
	}
	names := make([]string, width)
	for i := range names {
		names[i] = t.ColumnName(i)
	}
	return names
}

// firstWidth picks the column count before the full table is read:
// the header width, or the width of the first buffered record.
func firstWidth(t *Table, pending [][]string) int {
	if t.HasHeader {
		return len(t.Header)
	}
	if len(pending) > 0 {
		return len(pending[0])
	}
	return 0
}

package store

// Msg is the closed set of messages the reducer understands. The
// unexported marker method keeps the set sealed to this package.
type Msg interface{ msg() }

// ParsingMsg reports parse progress as a percentage (0-100).
type ParsingMsg struct {
	Progress float64
}

// ChunkMsg carries a batch of rows, each row packed as a single
// token-joined string.
type ChunkMsg struct {
	Rows []string
}

// HeaderMsg carries the column names of the current table. HasHeader
// reports whether they come from a real header row or are positional;
// the reducer ignores it, the boundary handler syncs its metadata
// from it.
type HeaderMsg struct {
	Columns   []string
	HasHeader bool
}

// SumColMsg carries the formatted result of a column sum.
type SumColMsg struct {
	Result string
}

// NamesMsg carries the current set of filter names.
type NamesMsg struct {
	Names []string
}

func (ParsingMsg) msg() {}
func (ChunkMsg) msg()   {}
func (HeaderMsg) msg()  {}
func (SumColMsg) msg()  {}
func (NamesMsg) msg()   {}

// AddFilterMsg is consumed at the boundary handler, never by the
// reducer: it bumps the selected-id counter and re-dispatches its
// names as an ordinary NamesMsg. It deliberately does not implement
// Msg so it cannot reach the reducer's switch.
type AddFilterMsg struct {
	Names []string
}

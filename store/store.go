package store

import (
	"fmt"
	"strings"
)

// DefaultToken separates cells inside a packed chunk row. The ASCII
// unit separator does not occur in normal CSV text, so packed rows
// survive cells containing commas or quotes.
const DefaultToken = "\x1f"

// State is the record worker messages are folded into. Each field is
// overwritten wholesale by messages of its matching tag only; the
// reducer never derives one field from another and keeps no history.
type State struct {
	Progress float64
	Chunk    [][]string
	Header   []string
	Names    []string
	Result   string
}

// Reduce returns a copy of s with the single field matching m's tag
// replaced. An unknown variant panics: Msg is sealed, so reaching the
// default case means a variant was added without extending the switch.
func Reduce(s State, m Msg, token string) State {
	switch m := m.(type) {
	case ParsingMsg:
		s.Progress = m.Progress
	case ChunkMsg:
		rows := make([][]string, len(m.Rows))
		for i, r := range m.Rows {
			rows[i] = strings.Split(r, token)
		}
		s.Chunk = rows
	case HeaderMsg:
		s.Header = m.Columns
	case SumColMsg:
		s.Result = m.Result
	case NamesMsg:
		s.Names = m.Names
	default:
		panic(fmt.Sprintf("store: unhandled message type %T", m))
	}
	return s
}

// Store owns a State and the delimiter token used to unpack chunk
// rows. It is single-owner: only the boundary handler applies messages,
// everyone else reads snapshots.
type Store struct {
	token string
	state State
}

// New creates a store. An empty token selects DefaultToken.
func New(token string) *Store {
	if token == "" {
		token = DefaultToken
	}
	return &Store{token: token}
}

// Apply folds one message into the state and returns the new snapshot.
func (s *Store) Apply(m Msg) State {
	s.state = Reduce(s.state, m, s.token)
	return s.state
}

// State returns the current snapshot.
func (s *Store) State() State {
	return s.state
}

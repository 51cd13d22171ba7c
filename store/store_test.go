package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReduceParsing(t *testing.T) {
	s := Reduce(State{}, ParsingMsg{Progress: 50}, "#")

	if s.Progress != 50 {
		t.Errorf("Expected progress 50, got %v", s.Progress)
	}
	if s.Chunk != nil || s.Header != nil || s.Names != nil || s.Result != "" {
		t.Errorf("Expected other fields untouched, got %+v", s)
	}
}

func TestReduceChunkSplitsOnToken(t *testing.T) {
	s := Reduce(State{}, ChunkMsg{Rows: []string{"a#b", "c#d"}}, "#")

	want := [][]string{{"a", "b"}, {"c", "d"}}
	if diff := cmp.Diff(want, s.Chunk); diff != "" {
		t.Errorf("Chunk mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceChunkReplacesWholesale(t *testing.T) {
	s := Reduce(State{}, ChunkMsg{Rows: []string{"a#b"}}, "#")
	s = Reduce(s, ChunkMsg{Rows: []string{"e#f"}}, "#")

	want := [][]string{{"e", "f"}}
	if diff := cmp.Diff(want, s.Chunk); diff != "" {
		t.Errorf("Chunk mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceHeader(t *testing.T) {
	h := []string{"col1", "col2"}
	s := Reduce(State{}, HeaderMsg{Columns: h}, "#")

	if diff := cmp.Diff(h, s.Header); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceSumCol(t *testing.T) {
	s := Reduce(State{}, SumColMsg{Result: "42"}, "#")

	if s.Result != "42" {
		t.Errorf("Expected result %q, got %q", "42", s.Result)
	}
}

func TestReduceNames(t *testing.T) {
	s := Reduce(State{}, NamesMsg{Names: []string{"x", "y"}}, "#")

	if diff := cmp.Diff([]string{"x", "y"}, s.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceSequence(t *testing.T) {
	s := State{}
	s = Reduce(s, ParsingMsg{Progress: 50}, "#")
	s = Reduce(s, HeaderMsg{Columns: []string{"col1", "col2"}}, "#")

	if s.Progress != 50 {
		t.Errorf("Expected progress to survive header message, got %v", s.Progress)
	}
	if diff := cmp.Diff([]string{"col1", "col2"}, s.Header); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceHeaderIdempotent(t *testing.T) {
	msg := HeaderMsg{Columns: []string{"a", "b"}}

	once := Reduce(State{}, msg, "#")
	twice := Reduce(once, msg, "#")

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Applying the same header twice changed state (-once +twice):\n%s", diff)
	}
}

// rogueMsg satisfies Msg without being part of the reducer's switch.
type rogueMsg struct{}

func (rogueMsg) msg() {}

func TestReducePanicsOnUnknownVariant(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic for unknown message variant")
		}
	}()
	Reduce(State{}, rogueMsg{}, "#")
}

func TestStoreApply(t *testing.T) {
	st := New("#")

	got := st.Apply(ParsingMsg{Progress: 25})
	if got.Progress != 25 {
		t.Errorf("Expected snapshot progress 25, got %v", got.Progress)
	}
	if st.State().Progress != 25 {
		t.Errorf("Expected stored progress 25, got %v", st.State().Progress)
	}
}

func TestStoreDefaultToken(t *testing.T) {
	st := New("")

	s := st.Apply(ChunkMsg{Rows: []string{"a" + DefaultToken + "b"}})
	want := [][]string{{"a", "b"}}
	if diff := cmp.Diff(want, s.Chunk); diff != "" {
		t.Errorf("Chunk mismatch (-want +got):\n%s", diff)
	}
}

package table

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/lepinkainen/csvview/store"
)

func TestMain(m *testing.M) {
	// database/sql keeps a pool goroutine alive between tests.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

// startEngine runs e until the test ends, returning its message
// channel and a cancel that waits for shutdown.
func startEngine(t *testing.T, e *Engine) <-chan Envelope {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		for range e.Messages() {
			// drain so Run can finish emitting
		}
		<-done
	})
	return e.Messages()
}

// collectUntilDone reads envelopes until the 100% parsing message.
func collectUntilDone(t *testing.T, msgs <-chan Envelope) []Envelope {
	t.Helper()

	var got []Envelope
	timeout := time.After(5 * time.Second)
	for {
		select {
		case env, ok := <-msgs:
			if !ok {
				t.Fatal("Engine channel closed before parse completed")
			}
			got = append(got, env)
			if p, isParsing := env.Payload.(store.ParsingMsg); isParsing && p.Progress >= 100 {
				return got
			}
		case <-timeout:
			t.Fatal("Timed out waiting for parse to complete")
		}
	}
}

func TestEngineParseEmitsInOrder(t *testing.T) {
	path := writeCSV(t, "name,age\nalice,30\nbob,25\n")

	e := New(path, Options{Token: "#"}, nil)
	msgs := startEngine(t, e)
	got := collectUntilDone(t, msgs)

	var header []string
	var rows [][]string
	detected := false
	sawChunkBeforeHeader := false
	for _, env := range got {
		switch m := env.Payload.(type) {
		case store.HeaderMsg:
			header = m.Columns
			detected = m.HasHeader
		case store.ChunkMsg:
			if header == nil {
				sawChunkBeforeHeader = true
			}
			st := store.Reduce(store.State{}, m, "#")
			rows = append(rows, st.Chunk...)
		}
	}

	if sawChunkBeforeHeader {
		t.Error("Expected header message before any chunk")
	}
	if diff := cmp.Diff([]string{"name", "age"}, header); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
	if !detected {
		t.Error("Expected header message to carry the detected flag")
	}
	if diff := cmp.Diff([][]string{{"alice", "30"}, {"bob", "25"}}, rows); diff != "" {
		t.Errorf("Rows mismatch (-want +got):\n%s", diff)
	}

	for _, env := range got {
		if env.RunID != got[0].RunID {
			t.Error("Expected a single run ID for one parse run")
		}
	}
}

func waitForPayload[T any](t *testing.T, msgs <-chan Envelope) T {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case env, ok := <-msgs:
			if !ok {
				t.Fatal("Engine channel closed while waiting")
			}
			if m, isWanted := env.Payload.(T); isWanted {
				return m
			}
		case <-timeout:
			var zero T
			t.Fatalf("Timed out waiting for %T", zero)
		}
	}
}

func TestEngineSumRequest(t *testing.T) {
	path := writeCSV(t, "n\n1\n2\n39\n")

	e := New(path, Options{}, nil)
	msgs := startEngine(t, e)
	collectUntilDone(t, msgs)

	e.RequestSum("n")

	m := waitForPayload[store.SumColMsg](t, msgs)
	if m.Result != "42" {
		t.Errorf("Expected sum \"42\", got %q", m.Result)
	}
}

func TestEngineFilters(t *testing.T) {
	path := writeCSV(t, "a,b\n1,2\n")

	e := New(path, Options{}, nil)
	msgs := startEngine(t, e)
	collectUntilDone(t, msgs)

	e.AddFilter("a")
	add := waitForPayload[store.AddFilterMsg](t, msgs)
	if diff := cmp.Diff([]string{"a"}, add.Names); diff != "" {
		t.Errorf("AddFilter names mismatch (-want +got):\n%s", diff)
	}

	e.AddFilter("b")
	add = waitForPayload[store.AddFilterMsg](t, msgs)
	if diff := cmp.Diff([]string{"a", "b"}, add.Names); diff != "" {
		t.Errorf("AddFilter names mismatch (-want +got):\n%s", diff)
	}

	e.RemoveFilter("a")
	names := waitForPayload[store.NamesMsg](t, msgs)
	if diff := cmp.Diff([]string{"b"}, names.Names); diff != "" {
		t.Errorf("RemoveFilter names mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineSetHeaderStartsNewRun(t *testing.T) {
	path := writeCSV(t, "name,age\nalice,30\n")

	e := New(path, Options{}, nil)
	msgs := startEngine(t, e)
	first := collectUntilDone(t, msgs)

	e.SetHeader(false)
	second := collectUntilDone(t, msgs)

	if first[0].RunID == second[0].RunID {
		t.Error("Expected a fresh run ID after SetHeader")
	}

	var header []string
	detected := true
	for _, env := range second {
		if m, isHeader := env.Payload.(store.HeaderMsg); isHeader {
			header = m.Columns
			detected = m.HasHeader
		}
	}
	if diff := cmp.Diff([]string{"col1", "col2"}, header); diff != "" {
		t.Errorf("Expected positional names after header off (-want +got):\n%s", diff)
	}
	if detected {
		t.Error("Expected header off to be reported in the header message")
	}
}

func TestEngineChannelClosesOnCancel(t *testing.T) {
	path := writeCSV(t, "a\n1\n")

	e := New(path, Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Run(ctx)
	}()

	collectUntilDone(t, e.Messages())
	cancel()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-e.Messages():
			if !ok {
				<-done
				return
			}
		case <-timeout:
			t.Fatal("Engine channel did not close after cancel")
		}
	}
}

package store

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var errTest = errors.New("parse blew up")

func TestHandlerForwardsReducerMessages(t *testing.T) {
	h := NewHandler(New("#"), nil)

	h.Handle(HeaderMsg{Columns: []string{"a"}})

	if diff := cmp.Diff([]string{"a"}, h.State().Header); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerSyncsHeaderMeta(t *testing.T) {
	h := NewHandler(New("#"), nil)

	h.Handle(HeaderMsg{Columns: []string{"name", "age"}, HasHeader: true})
	if !h.Meta().HasHeader {
		t.Error("Expected HasHeader after a detected-header message")
	}

	h.Handle(HeaderMsg{Columns: []string{"col1", "col2"}})
	if h.Meta().HasHeader {
		t.Error("Expected HasHeader cleared after a positional-names message")
	}
}

func TestHandlerAddFilter(t *testing.T) {
	h := NewHandler(New("#"), nil)

	h.Handle(AddFilterMsg{Names: []string{"a"}})

	if got := h.Meta().SelectedID; got != 1 {
		t.Errorf("Expected SelectedID 1 after one addFilter, got %d", got)
	}
	if diff := cmp.Diff([]string{"a"}, h.State().Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	h.Handle(AddFilterMsg{Names: []string{"a", "b"}})

	if got := h.Meta().SelectedID; got != 2 {
		t.Errorf("Expected SelectedID 2 after two addFilters, got %d", got)
	}
}

func TestHandlerDropsUnrecognized(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := NewHandler(New("#"), zap.New(core))

	h.Handle(HeaderMsg{Columns: []string{"a"}})
	before := h.State()

	h.Handle("definitely not a message")

	if diff := cmp.Diff(before, h.State()); diff != "" {
		t.Errorf("Unrecognized message mutated state (-before +after):\n%s", diff)
	}
	if logs.Len() != 1 {
		t.Fatalf("Expected 1 warning for dropped message, got %d", logs.Len())
	}
	if entry := logs.All()[0]; entry.Message != "dropping unrecognized worker message" {
		t.Errorf("Unexpected log message %q", entry.Message)
	}
}

func TestHandlerStatusTransitions(t *testing.T) {
	h := NewHandler(New("#"), nil)

	if h.Status() != StatusEmpty {
		t.Errorf("Expected initial status Empty, got %s", h.Status())
	}

	h.Handle(ParsingMsg{Progress: 10})
	if h.Status() != StatusLoading {
		t.Errorf("Expected Loading at 10%%, got %s", h.Status())
	}
	if !h.Meta().HeaderToggleDisabled {
		t.Error("Expected header toggle disabled while loading")
	}

	h.Handle(ParsingMsg{Progress: 100})
	if h.Status() != StatusReady {
		t.Errorf("Expected Ready at 100%%, got %s", h.Status())
	}
	if h.Meta().HeaderToggleDisabled {
		t.Error("Expected header toggle enabled when done")
	}
}

func TestHandlerFail(t *testing.T) {
	h := NewHandler(New("#"), nil)

	h.Fail(errTest)

	if h.Status() != StatusFailed {
		t.Errorf("Expected Failed, got %s", h.Status())
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusEmpty, "Empty"},
		{StatusLoading, "Loading"},
		{StatusReady, "Ready"},
		{StatusFailed, "Failed"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}

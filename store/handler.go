package store

import (
	"fmt"

	"go.uber.org/zap"
)

// Status describes the lifecycle of the table data.
type Status int

const (
	StatusEmpty Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "Empty"
	case StatusLoading:
		return "Loading"
	case StatusReady:
		return "Ready"
	case StatusFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Meta is the auxiliary UI state tracked next to the data itself.
type Meta struct {
	HasHeader            bool
	HeaderToggleDisabled bool
	SelectedID           int
}

// Handler sits between the worker channel and the reducer. Messages of
// the sealed reducer set are forwarded as-is; AddFilterMsg expands into
// its two boundary effects; anything else is logged and dropped without
// touching state. The handler also owns the status/meta bookkeeping
// that the reducer, by contract, must not do.
type Handler struct {
	store  *Store
	log    *zap.Logger
	status Status
	meta   Meta
}

// NewHandler wires a handler to its store. A nil logger is replaced
// with a no-op logger.
func NewHandler(st *Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: st, log: log, status: StatusEmpty}
}

// Handle consumes one worker message.
func (h *Handler) Handle(payload any) {
	switch m := payload.(type) {
	case AddFilterMsg:
		h.meta.SelectedID++
		h.store.Apply(NamesMsg{Names: m.Names})
	case HeaderMsg:
		h.store.Apply(m)
		h.meta.HasHeader = m.HasHeader
	case ParsingMsg:
		h.store.Apply(m)
		if m.Progress >= 100 {
			h.status = StatusReady
			h.meta.HeaderToggleDisabled = false
		} else {
			h.status = StatusLoading
			h.meta.HeaderToggleDisabled = true
		}
	case Msg:
		h.store.Apply(m)
	default:
		h.log.Warn("dropping unrecognized worker message",
			zap.String("type", fmt.Sprintf("%T", payload)))
	}
}

// Fail marks the data as failed, for errors reported outside the
// message stream (the worker has no error tag).
func (h *Handler) Fail(err error) {
	h.status = StatusFailed
	h.log.Error("worker failed", zap.Error(err))
}

// Reset returns status and header bookkeeping to the start-of-run
// position. The selected-id counter survives resets, like the store's
// token it belongs to the session rather than a single parse run.
func (h *Handler) Reset() {
	h.status = StatusEmpty
	h.meta.HeaderToggleDisabled = false
}

// SetHasHeader records the header toggle position.
func (h *Handler) SetHasHeader(on bool) {
	h.meta.HasHeader = on
}

// Status returns the current data lifecycle status.
func (h *Handler) Status() Status {
	return h.status
}

// Meta returns a copy of the auxiliary UI state.
func (h *Handler) Meta() Meta {
	return h.meta
}

// State returns the store's current snapshot.
func (h *Handler) State() State {
	return h.store.State()
}

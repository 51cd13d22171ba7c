package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	tbl "github.com/lepinkainen/csvview/table"
)

// EngineMsg wraps one engine envelope for the Bubble Tea loop.
type EngineMsg struct {
	Envelope tbl.Envelope
}

// EngineClosedMsg signals that the engine channel closed and no more
// messages will arrive.
type EngineClosedMsg struct{}

// waitForEngine arms a single read of the engine channel. Update
// re-arms it after consuming each message, so exactly one subscription
// exists for the model's lifetime; the closed channel is the teardown
// signal.
func waitForEngine(ch <-chan tbl.Envelope) tea.Cmd {
	return func() tea.Msg {
		env, ok := <-ch
		if !ok {
			return EngineClosedMsg{}
		}
		return EngineMsg{Envelope: env}
	}
}

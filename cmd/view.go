package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/csvview/store"
	"github.com/lepinkainen/csvview/table"
	"github.com/lepinkainen/csvview/types"
	"github.com/lepinkainen/csvview/ui"
)

type ViewCmd struct {
	File      string `arg:"" name:"file" help:"CSV file to view" type:"existingfile"`
	Delimiter string `help:"Field delimiter" short:"d"`
	ChunkSize int    `help:"Rows per parsed chunk"`
	Header    string `help:"Header handling" enum:"auto,on,off," default:""`
	Watch     bool   `help:"Reload when the file changes on disk"`
}

func (cmd *ViewCmd) Run(appCtx *types.AppContext) error {
	opts, err := engineOptions(appCtx, cmd.Delimiter, cmd.ChunkSize, cmd.Header)
	if err != nil {
		return err
	}
	opts.Watch = cmd.Watch || appCtx.Config.Watch

	log := appCtx.Log()
	engine := table.New(cmd.File, opts, log)
	st := store.New(opts.Token)
	// Meta.HasHeader syncs from the engine's header message, so forced
	// and auto-detected headers land the same way.
	handler := store.NewHandler(st, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- engine.Run(ctx)
	}()

	p := tea.NewProgram(ui.NewModel(cmd.File, engine, handler), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	cancel()
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

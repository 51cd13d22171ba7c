package cmd

import (
	"fmt"

	"github.com/lepinkainen/csvview/table"
	"github.com/lepinkainen/csvview/types"
	"github.com/lepinkainen/csvview/ui"
)

type SumCmd struct {
	File      string `arg:"" name:"file" help:"CSV file to read" type:"existingfile"`
	Column    string `arg:"" name:"column" help:"Column to sum"`
	Delimiter string `help:"Field delimiter" short:"d"`
	Header    string `help:"Header handling" enum:"auto,on,off," default:""`
}

func (cmd *SumCmd) Run(appCtx *types.AppContext) error {
	opts, err := engineOptions(appCtx, cmd.Delimiter, 0, cmd.Header)
	if err != nil {
		return err
	}

	bar, err := table.NewByteProgress(cmd.File, "parsing")
	if err != nil {
		return fmt.Errorf("stat %s: %w", cmd.File, err)
	}
	opts.ParseOptions.Progress = bar

	t, err := table.Load(cmd.File, opts.ParseOptions)
	if err != nil {
		return err
	}
	table.InferColumns(t, len(t.Rows))

	result, err := table.SumColumn(t, cmd.Column)
	if err != nil {
		return err
	}

	fmt.Printf("%s = %s\n", cmd.Column, ui.SuccessStyle.Render(result))
	return nil
}

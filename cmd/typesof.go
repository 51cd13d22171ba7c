package cmd

import (
	"fmt"

	"github.com/lepinkainen/csvview/table"
	"github.com/lepinkainen/csvview/types"
	"github.com/lepinkainen/csvview/ui"
)

type TypesCmd struct {
	File      string `arg:"" name:"file" help:"CSV file to analyze" type:"existingfile"`
	Delimiter string `help:"Field delimiter" short:"d"`
	Header    string `help:"Header handling" enum:"auto,on,off," default:""`
	Sample    int    `help:"Rows to sample per column (0 = all)"`
}

func (cmd *TypesCmd) Run(appCtx *types.AppContext) error {
	opts, err := engineOptions(appCtx, cmd.Delimiter, 0, cmd.Header)
	if err != nil {
		return err
	}

	t, err := table.Load(cmd.File, opts.ParseOptions)
	if err != nil {
		return err
	}

	sample := cmd.Sample
	if sample <= 0 {
		sample = len(t.Rows)
	}
	cols := table.InferColumns(t, sample)

	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("%s: %d columns, %d rows", cmd.File, len(cols), len(t.Rows))))
	for _, c := range cols {
		fmt.Printf("  %-24s %s\n", c.Name, c.Code)
	}
	return nil
}

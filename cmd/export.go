package cmd

import (
	"fmt"

	"github.com/lepinkainen/csvview/table"
	"github.com/lepinkainen/csvview/types"
	"github.com/lepinkainen/csvview/ui"
)

type ExportCmd struct {
	File      string `arg:"" name:"file" help:"CSV file to export" type:"existingfile"`
	Database  string `arg:"" name:"database" help:"SQLite database to write" type:"path"`
	Table     string `help:"Destination table name (default: derived from the file name)"`
	Delimiter string `help:"Field delimiter" short:"d"`
	Header    string `help:"Header handling" enum:"auto,on,off," default:""`
}

func (cmd *ExportCmd) Run(appCtx *types.AppContext) error {
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

	name := cmd.Table
	if name == "" {
		name = table.TableNameFromPath(cmd.File)
	}

	n, err := table.ExportSQLite(t, cmd.Database, name)
	if err != nil {
		return fmt.Errorf("export to %s: %w", cmd.Database, err)
	}

	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ Exported %d rows to %s.%s", n, cmd.Database, name)))
	return nil
}

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lepinkainen/csvview/cmd"
	"github.com/lepinkainen/csvview/config"
	"github.com/lepinkainen/csvview/types"
)

var Version = "dev"

type CLI struct {
	Verbose    bool   `help:"Enable debug logging" short:"v"`
	ConfigPath string `name:"config" help:"Path to the config file" type:"path"`

	View   cmd.ViewCmd   `cmd:"" help:"Browse a CSV file interactively"`
	Sum    cmd.SumCmd    `cmd:"" help:"Sum a numeric column"`
	Types  cmd.TypesCmd  `cmd:"" help:"Show inferred column types"`
	Export cmd.ExportCmd `cmd:"" help:"Load a CSV file into SQLite"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("csvview"),
		kong.Description("Inspect, sum and export CSV files."),
		kong.UsageOnError(),
	)

	logCfg := zap.NewProductionConfig()
	if cli.Verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	// The viewer owns the terminal; logs go to a file instead of
	// corrupting the TUI.
	if strings.HasPrefix(kctx.Command(), "view") {
		logCfg.OutputPaths = []string{filepath.Join(os.TempDir(), "csvview.log")}
		logCfg.ErrorOutputPaths = logCfg.OutputPaths
	}
	logger, err := logCfg.Build()
	kctx.FatalIfErrorf(err)
	defer logger.Sync()

	cfg, err := config.Load(cli.ConfigPath)
	kctx.FatalIfErrorf(err)

	appCtx := &types.AppContext{
		Version: Version,
		Logger:  logger,
		Config:  cfg,
	}
	kctx.FatalIfErrorf(kctx.Run(appCtx))
}

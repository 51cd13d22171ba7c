package cmd

import (
	"fmt"
	"unicode/utf8"

	"github.com/lepinkainen/csvview/table"
	"github.com/lepinkainen/csvview/types"
)

// engineOptions merges config-file settings with command flags. Flags
// win when set.
func engineOptions(appCtx *types.AppContext, delimiter string, chunkSize int, header string) (table.Options, error) {
	cfg := appCtx.Config

	var opts table.Options

	if delimiter == "" {
		delimiter = cfg.Delimiter
	}
	switch {
	case delimiter == "":
		opts.ParseOptions.Delimiter = ','
	default:
		r, size := utf8.DecodeRuneInString(delimiter)
		if size != len(delimiter) || r == utf8.RuneError {
			return opts, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		opts.ParseOptions.Delimiter = r
	}

	if chunkSize > 0 {
		opts.ParseOptions.ChunkSize = chunkSize
	} else {
		opts.ParseOptions.ChunkSize = cfg.ChunkSize
	}

	if header == "" {
		header = cfg.Header
	}
	switch header {
	case "", "auto":
		opts.ParseOptions.Header = table.HeaderAuto
	case "on":
		opts.ParseOptions.Header = table.HeaderOn
	case "off":
		opts.ParseOptions.Header = table.HeaderOff
	default:
		return opts, fmt.Errorf("header must be auto, on or off, got %q", header)
	}

	return opts, nil
}

package types

import (
	"go.uber.org/zap"

	"github.com/lepinkainen/csvview/config"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Logger  *zap.Logger
	Config  config.Config
}

// Log returns the context logger, or a no-op logger for a nil context.
func (c *AppContext) Log() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

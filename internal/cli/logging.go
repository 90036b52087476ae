package cli

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/lwiot/lwiot-build/internal/logger"
)

// newLogger creates the diagnostics logger from the global flags.
// All logs are sent to stderr to keep stdout clean for the cmake command output.
func newLogger(c *cli.Context) (*slog.Logger, error) {
	l, err := logger.New(c.String("log-level"), c.String("log-format"), c.App.ErrWriter)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return l, nil
}

package logger

import (
	"log/slog"

	"github.com/tilsley/linkdesk/pkg/logging"
)

const appName = "linkdesk-server"

// New returns the server logger configured from LOG_FORMAT and LOG_LEVEL.
// See pkg/logging for details.
func New() *slog.Logger {
	return logging.New(appName)
}

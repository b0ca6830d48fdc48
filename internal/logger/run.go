package logger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WithRun tags l with the command name and a fresh run_id so every line of one
// batch invocation can be correlated. The run id is returned for reporting.
func WithRun(l *zap.Logger, command string) (*zap.Logger, string) {
	id := uuid.NewString()
	return l.With(zap.String("command", command), zap.String("run_id", id)), id
}

package state

import (
	"time"

	"go.uber.org/zap"
)

// newLocalEnv creates environment with no-op logger, so code running before
// configuration is loaded (usage errors, unknown commands) can always log.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Log:   zap.NewNop(),
		start: time.Now(),
	}
}

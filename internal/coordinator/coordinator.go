package coordinator

import (
	"io"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/logging"
	"github.com/fyrsmithlabs/termcoord/internal/metrics"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// Coordinator holds the dependencies every operation needs: the state
// root, the loaded configuration, collectors, and a logger. It carries no
// request-scoped state of its own — every mutation goes straight to the
// filesystem through internal/store and its dependents.
type Coordinator struct {
	Root    store.Root
	Config  *config.Config
	Metrics *metrics.Metrics
	Log     *logging.Logger

	// Warn receives best-effort warnings from scans that skip malformed
	// records (store.ListSessions, taskboard.ListTasks, ...). Defaults to
	// io.Discard when nil.
	Warn io.Writer
}

// New builds a Coordinator. log may be nil only in tests that do not
// exercise logging paths.
func New(root store.Root, cfg *config.Config, log *logging.Logger) *Coordinator {
	return &Coordinator{
		Root:    root,
		Config:  cfg,
		Metrics: metrics.New(),
		Log:     log,
		Warn:    io.Discard,
	}
}

func (c *Coordinator) warnOut() io.Writer {
	if c.Warn == nil {
		return io.Discard
	}
	return c.Warn
}

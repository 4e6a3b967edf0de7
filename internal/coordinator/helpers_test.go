package coordinator

import (
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

func newTestCoordinator(dir string) *Coordinator {
	cfg := config.Default()
	cfg.Allowlist.Models = []string{"sonnet"}
	cfg.Allowlist.Agents = []string{"general-purpose"}
	cfg.Worker.Binary = "true"
	return New(store.NewRoot(dir), cfg, nil)
}

func writeSession(root store.Root, s *model.Session) error {
	return store.SaveSession(root, s)
}

func baseSession(id string, lastActive time.Time) *model.Session {
	return &model.Session{
		Session:    id,
		Status:     model.SessionActive,
		Started:    lastActive,
		LastActive: lastActive,
		ToolCounts: map[string]int{},
	}
}

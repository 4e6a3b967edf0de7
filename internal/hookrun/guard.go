package hookrun

import (
	"fmt"
	"io"

	"github.com/fyrsmithlabs/termcoord/internal/config"
	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// Guard handles the pre-edit conflict-guard hook. It is purely advisory: it
// never returns an error that should block the tool call, only writes a
// warning to stderr. The only hard failure is an invalid session_id
// (spec.md §4.2).
func Guard(root store.Root, cfg *config.Config, p *Payload, stderr io.Writer) error {
	if err := store.ValidateSessionID(p.SessionID); err != nil {
		return err
	}
	if p.ToolName != "Edit" && p.ToolName != "Write" {
		return nil
	}
	if cfg.SkipRuleEnabled("conflict_guard") {
		return nil
	}

	fp := p.FilePath()
	if fp == "" {
		return nil
	}
	short := store.ShortID(p.SessionID)

	sessions, err := store.ListSessions(root, stderr)
	if err != nil {
		return nil // advisory: never fail the tool call on a scan error
	}

	for _, s := range sessions {
		if s.Session == short || s.Status != model.SessionActive {
			continue
		}
		for _, touched := range s.FilesTouched {
			if touched == fp {
				fmt.Fprintf(stderr, "[CONFLICT] %s is also being edited by session %s\n", fp, s.Session)
				return nil
			}
		}
	}
	return nil
}

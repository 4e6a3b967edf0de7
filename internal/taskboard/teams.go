package taskboard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// teamNamePattern bounds team names to the same safe character class as
// task/session ids, since the name is interpolated directly into a path.
var teamNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CreateOrJoinTeam creates the team if absent, or idempotently merges
// members into the existing record if present: adding an already-member
// session is a no-op, matching the idempotence the spec requires elsewhere
// (SPEC_FULL.md §C "Team membership is idempotent").
func CreateOrJoinTeam(root store.Root, name, project string, members []string, now time.Time) (*model.Team, error) {
	if !teamNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid_argument: team name %q", name)
	}

	var team model.Team
	err := store.WithLock(root.TeamPath(name), func() error {
		if err := store.ReadJSON(root.TeamPath(name), &team); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			team = model.Team{Name: name, Project: project, Created: now}
		}

		for _, m := range members {
			if !team.HasMember(m) {
				team.Members = append(team.Members, m)
			}
		}
		return store.SafeWriteJSON(root.TeamPath(name), &team)
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetTeam reads a single team record.
func GetTeam(root store.Root, name string) (*model.Team, error) {
	if !teamNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid_argument: team name %q", name)
	}
	var team model.Team
	if err := store.ReadJSON(root.TeamPath(name), &team); err != nil {
		return nil, fmt.Errorf("not_found: team %q", name)
	}
	return &team, nil
}

// ListTeams reads every team record, best-effort skipping malformed files.
func ListTeams(root store.Root, warnOut io.Writer) ([]*model.Team, error) {
	matches, err := filepath.Glob(filepath.Join(root.TeamsDir(), "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	out := make([]*model.Team, 0, len(matches))
	for _, path := range matches {
		var team model.Team
		if err := store.ReadJSON(path, &team); err != nil {
			if warnOut != nil {
				fmt.Fprintf(warnOut, "taskboard: skipping malformed team record %s: %v\n", path, err)
			}
			continue
		}
		out = append(out, &team)
	}
	return out, nil
}

package dashboard

import (
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
	"github.com/fyrsmithlabs/termcoord/internal/worker"
)

// WorkerSummary is one row of the dashboard's worker table. It is derived
// straight from the results directory the same way store.ListSessions
// derives the session table from session-*.json, since the coordinator
// exposes get_result by task id but has no list operation of its own —
// the dashboard is the one reader that needs "every worker", so it reads
// the directory layout directly rather than growing the RPC surface for
// a read-only TUI concern.
type WorkerSummary struct {
	TaskID    string
	Directory string
	Mode      model.WorkerMode
	Status    model.WorkerStatus
	Pipeline  string
}

// ListWorkers returns a summary for every worker with a meta file under
// root's results directory, most recently spawned first.
func ListWorkers(root store.Root, warnOut io.Writer) ([]WorkerSummary, error) {
	matches, err := filepath.Glob(filepath.Join(root.ResultsDir(), "*.meta.json"))
	if err != nil {
		return nil, err
	}

	out := make([]WorkerSummary, 0, len(matches))
	spawned := make(map[string]time.Time, len(matches))
	for _, path := range matches {
		base := filepath.Base(path)
		taskID := strings.TrimSuffix(base, ".meta.json")

		res, err := worker.GetResult(root, taskID, 0)
		if err != nil {
			if warnOut != nil {
				io.WriteString(warnOut, "dashboard: skipping unreadable worker record "+path+": "+err.Error()+"\n")
			}
			continue
		}

		out = append(out, WorkerSummary{
			TaskID:    res.Meta.TaskID,
			Directory: res.Meta.Directory,
			Mode:      res.Meta.Mode,
			Status:    res.Status,
			Pipeline:  res.Meta.PipelineID,
		})
		spawned[res.Meta.TaskID] = res.Meta.Spawned
	}

	sort.SliceStable(out, func(i, j int) bool { return spawned[out[i].TaskID].After(spawned[out[j].TaskID]) })
	return out, nil
}

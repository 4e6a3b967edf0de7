package hookrun

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/model"
	"github.com/fyrsmithlabs/termcoord/internal/store"
)

// tailBytes is how much of a worker's result text is embedded in the
// [WORKER COMPLETED] inbox message.
const tailBytes = 2048

// Drain handles the pre-tool-use inbox-drain hook: it empties the session's
// inbox to stderr and routes any worker-completion records addressed to
// this session into that same inbox for the next drain (spec.md §4.2).
func Drain(root store.Root, p *Payload, stderr io.Writer, now time.Time) error {
	if err := store.ValidateSessionID(p.SessionID); err != nil {
		return err
	}
	short := store.ShortID(p.SessionID)

	drainErr := drainInbox(root, short, stderr)

	if err := routeCompletions(root, short, now); err != nil {
		fmt.Fprintf(stderr, "drain: routing worker completions: %v\n", err)
	}

	return drainErr
}

// drainInbox atomically renames the inbox aside, prints its contents to
// stderr, then deletes the aside file. Messages appended during the rename
// land in a freshly created inbox file and are picked up on the next call.
func drainInbox(root store.Root, short string, stderr io.Writer) error {
	inboxPath := root.InboxPath(short)
	if !store.Exists(inboxPath) {
		return nil
	}

	aside := inboxPath + ".draining"
	if err := os.Rename(inboxPath, aside); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("renaming inbox aside: %w", err)
	}
	defer os.Remove(aside)

	messages, err := store.ReadJSONL[model.InboxMessage](aside, stderr)
	if err != nil {
		return fmt.Errorf("reading drained inbox: %w", err)
	}
	if len(messages) == 0 {
		return nil
	}

	fmt.Fprintln(stderr, "[INBOX]")
	for _, m := range messages {
		fmt.Fprintf(stderr, "  [%s] from %s: %s\n", m.Priority, m.From, m.Content)
	}
	return nil
}

// routeCompletions scans results/ for done-but-unreported workers and, for
// each one addressed to short, appends a [WORKER COMPLETED] message to this
// session's inbox and marks it reported. Records with no notify_session_id,
// or addressed elsewhere, are left untouched for their own drainer.
func routeCompletions(root store.Root, short string, now time.Time) error {
	matches, err := filepath.Glob(filepath.Join(root.ResultsDir(), "*.meta.json.done"))
	if err != nil {
		return err
	}

	for _, donePath := range matches {
		taskID := strings.TrimSuffix(filepath.Base(donePath), ".meta.json.done")
		if store.Exists(root.ReportedPath(taskID)) {
			continue
		}

		var meta model.WorkerMeta
		if err := store.ReadJSON(root.MetaPath(taskID), &meta); err != nil {
			continue
		}
		if meta.NotifySessionID == "" || meta.NotifySessionID != short {
			continue
		}

		content := fmt.Sprintf("[WORKER COMPLETED] %s %s", taskID, tailResult(root.ResultTextPath(taskID)))
		if err := store.AppendJSONLine(root.InboxPath(short), model.InboxMessage{
			TS:       now,
			From:     "worker:" + taskID,
			Priority: model.PriorityNormal,
			Content:  content,
		}); err != nil {
			return fmt.Errorf("appending completion to inbox: %w", err)
		}

		if err := store.SafeWrite(root.ReportedPath(taskID), []byte(now.Format(time.RFC3339)+"\n")); err != nil {
			return fmt.Errorf("writing reported marker: %w", err)
		}
	}
	return nil
}

// tailResult best-effort reads the final tailBytes of a worker's result
// file for embedding in the completion message.
func tailResult(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if len(data) > tailBytes {
		data = data[len(data)-tailBytes:]
	}
	return strings.TrimSpace(string(data))
}

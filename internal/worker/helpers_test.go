package worker

import (
	"os"
	"testing"
	"time"
)

func readAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// waitForFile polls for path to appear, failing the test if it doesn't
// within timeout. Spawn launches children asynchronously, so tests that
// assert on a done marker need to wait for the background process rather
// than racing it.
func waitForFile(t *testing.T, path string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", path)
}

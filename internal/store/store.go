// Package store implements the filesystem state-store primitives shared by
// every other component of the coordination layer: atomic writes,
// lock-protected appends, lock-protected read-modify-write, and
// best-effort JSON/JSONL decoding (spec.md §4.1). A few callers outside
// this package also use os and filepath on the state root directly: the
// inbox drain's rename-aside, the doctor command, and the dashboard's
// results-directory scan.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirMode and FileMode are the owner-only permissions required by spec.md
// §3: directories are owner-rwx, files owner-rw. On platforms without
// POSIX modes these are a best-effort hint.
const (
	DirMode  = 0o700
	FileMode = 0o600
)

// SafeWrite writes data to path by writing to path+".tmp" and renaming over
// path, creating parent directories with restricted mode if absent, and
// applying FileMode after open (spec.md §4.1).
func SafeWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FileMode)
	if err != nil {
		return fmt.Errorf("opening temp file %s: %w", tmp, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing temp file %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing temp file %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	return nil
}

// SafeWriteJSON marshals v and writes it via SafeWrite.
func SafeWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return SafeWrite(path, data)
}

// AppendLine appends one '\n'-terminated record to path under an exclusive
// lock on the path itself, creating the file and parent directories if
// absent. The lock is held for the duration of the write (spec.md §4.1).
func AppendLine(path string, line []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", path, err)
	}

	return withLock(path, func() error {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, FileMode)
		if err != nil {
			return fmt.Errorf("opening %s for append: %w", path, err)
		}
		defer f.Close()

		if _, err := f.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("appending to %s: %w", path, err)
		}
		return nil
	})
}

// AppendJSONLine marshals v and appends it via AppendLine.
func AppendJSONLine(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling line for %s: %w", path, err)
	}
	return AppendLine(path, data)
}

// ReadJSON best-effort reads and unmarshals a single JSON object from path
// into v. A missing file is reported via the returned error satisfying
// os.IsNotExist; callers that treat "absent" as a valid empty state should
// check for that explicitly.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// ReadJSONL reads path line by line, unmarshaling each non-empty line into a
// fresh T via decode. Malformed lines are skipped with a warning written to
// warnOut (typically os.Stderr) rather than aborting the read (spec.md
// §4.1). A missing file yields a nil, nil result.
func ReadJSONL[T any](path string, warnOut io.Writer) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []T
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(line, &v); err != nil {
			if warnOut != nil {
				fmt.Fprintf(warnOut, "store: skipping malformed line %d in %s: %v\n", lineNo, path, err)
			}
			continue
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("scanning %s: %w", path, err)
	}
	return out, nil
}

// Exists reports whether path exists on disk.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

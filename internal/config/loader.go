package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// maxConfigFileSize bounds the YAML config file to prevent resource
// exhaustion (grounded on internal/config/loader.go's LoadWithFile).
const maxConfigFileSize = 1024 * 1024

// KnownSkipRules are the *_SKIP_RULES values the hook guards recognize.
// Values outside this set are dropped with a warning, never applied
// (spec.md §6).
var KnownSkipRules = map[string]bool{
	"conflict_guard": true,
	"rate_limit":     true,
}

// Load loads configuration from configPath (or the default path if empty),
// then overrides with environment variables prefixed TERMCOORD_.
//
// Precedence, lowest to highest: hardcoded defaults, YAML file, environment.
func Load(configPath string, warnOut io.Writer) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		configPath = defaultConfigPath()
	}

	if configPath != "" {
		if err := validateConfigPath(configPath); err != nil {
			return nil, fmt.Errorf("config path validation failed: %w", err)
		}

		if _, err := os.Stat(configPath); err == nil {
			f, err := os.Open(configPath)
			if err != nil {
				return nil, fmt.Errorf("opening config file: %w", err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return nil, fmt.Errorf("stat config file: %w", err)
			}
			if err := validateConfigFileProperties(info); err != nil {
				return nil, fmt.Errorf("config file validation failed: %w", err)
			}

			content, err := io.ReadAll(f)
			if err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider("TERMCOORD_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.SkipRules = filterSkipRules(cfg.SkipRules, warnOut)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// multiWordSections lists the koanf section tags that themselves contain an
// underscore (state_root, rate_limit, skip_rules). A naive split on the
// first underscore would cut these in half — TERMCOORD_STATE_ROOT_DIR would
// become "state.root_dir" instead of "state_root.dir" — so they're matched
// as whole prefixes before falling back to the single-word case.
var multiWordSections = []string{"state_root", "rate_limit", "skip_rules"}

// envTransform maps TERMCOORD_SECTION_FIELD to section.field. Most sections
// are a single word, so splitting on the first underscore is enough; the
// sections in multiWordSections are matched as a whole prefix first.
func envTransform(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, "TERMCOORD_"))

	for _, section := range multiWordSections {
		if lower == section {
			return section
		}
		if field, ok := strings.CutPrefix(lower, section+"_"); ok {
			return section + "." + field
		}
	}

	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// filterSkipRules drops any rule not in KnownSkipRules, warning instead of
// failing (spec.md §6: "values outside the allowed set are ignored with a
// stderr warning").
func filterSkipRules(rules []string, warnOut io.Writer) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if KnownSkipRules[r] {
			out = append(out, r)
		} else if warnOut != nil {
			fmt.Fprintf(warnOut, "config: ignoring unknown skip rule %q\n", r)
		}
	}
	return out
}

// validateConfigPath restricts config files to ~/.config/termcoord/ or
// /etc/termcoord/, resolving symlinks to prevent path-traversal escapes.
func validateConfigPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		resolved = absPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}

	allowedDirs := []string{
		filepath.Join(home, ".config", "termcoord"),
		"/etc/termcoord",
	}
	for _, dir := range allowedDirs {
		if strings.HasPrefix(resolved, dir) {
			return nil
		}
	}
	return fmt.Errorf("config file must be in ~/.config/termcoord/ or /etc/termcoord/")
}

// validateConfigFileProperties enforces 0600/0400 permissions and the size
// ceiling, using the already-open file descriptor's FileInfo to avoid a
// TOCTOU race between validation and read.
func validateConfigFileProperties(info os.FileInfo) error {
	if runtime.GOOS != "windows" {
		perm := info.Mode().Perm()
		if perm != 0o600 && perm != 0o400 {
			return fmt.Errorf("insecure config file permissions: %v (expected 0600 or 0400)", perm)
		}
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}
	return nil
}

// EnsureConfigDir creates ~/.config/termcoord with owner-only permissions.
func EnsureConfigDir() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	return os.MkdirAll(filepath.Join(home, ".config", "termcoord"), 0o700)
}

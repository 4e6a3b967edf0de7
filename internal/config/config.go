// Package config loads termcoord's configuration: state root, rate limits,
// timeouts, and the model/agent allowlists, layering defaults, an optional
// YAML file, and environment variables (internal/config/loader.go).
package config

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/termcoord/internal/logging"
)

// Config is the complete termcoord configuration.
type Config struct {
	StateRoot StateRootConfig `koanf:"state_root"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Heartbeat HeartbeatConfig `koanf:"heartbeat"`
	Wake      WakeConfig      `koanf:"wake"`
	Worker    WorkerConfig    `koanf:"worker"`
	Allowlist AllowlistConfig `koanf:"allowlist"`
	SkipRules []string        `koanf:"skip_rules"`
	Logging   logging.Config  `koanf:"logging"`
}

// StateRootConfig controls where <root>/terminals/ lives.
type StateRootConfig struct {
	Dir string `koanf:"dir"`
}

// RateLimitConfig controls send_message's per-sender budget. The counter
// is keyed by sender only (RateLimitPath(sender)): broadcast fanning out
// to many recipients under one call would otherwise need one counter file
// per recipient pair for no practical gain.
type RateLimitConfig struct {
	Window          time.Duration `koanf:"window"`
	MaxPerWindow    int           `koanf:"max_per_window"`
	MaxContentBytes int           `koanf:"max_content_bytes"`
}

// HeartbeatConfig controls the hook's session-record rewrite throttle.
type HeartbeatConfig struct {
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// WakeConfig controls the scripting-bridge timeout.
type WakeConfig struct {
	BridgeTimeout time.Duration `koanf:"bridge_timeout"`
}

// WorkerConfig controls subprocess spawn and kill behavior.
type WorkerConfig struct {
	SpawnTimeout time.Duration `koanf:"spawn_timeout"`
	KillGrace    time.Duration `koanf:"kill_grace"`
	Binary       string        `koanf:"binary"`
}

// AllowlistConfig holds the model/agent allowlists (spec.md §6).
type AllowlistConfig struct {
	Models []string `koanf:"models"`
	Agents []string `koanf:"agents"`
}

// Default returns termcoord's hardcoded defaults, the lowest-precedence
// layer in LoadWithFile.
func Default() *Config {
	return &Config{
		StateRoot: StateRootConfig{Dir: defaultStateRootDir()},
		RateLimit: RateLimitConfig{
			Window:          10 * time.Second,
			MaxPerWindow:    20,
			MaxContentBytes: 4096,
		},
		Heartbeat: HeartbeatConfig{RateLimitWindow: 5 * time.Second},
		Wake:      WakeConfig{BridgeTimeout: 10 * time.Second},
		Worker: WorkerConfig{
			SpawnTimeout: 30 * time.Second,
			KillGrace:    5 * time.Second,
			Binary:       "claude",
		},
		Allowlist: AllowlistConfig{
			Models: []string{"sonnet", "opus", "haiku"},
			Agents: []string{"general-purpose"},
		},
		Logging: *logging.DefaultConfig(),
	}
}

// Validate checks cross-field invariants.
func (c *Config) Validate() error {
	if c.StateRoot.Dir == "" {
		return fmt.Errorf("state_root.dir must not be empty")
	}
	if c.RateLimit.MaxPerWindow <= 0 {
		return fmt.Errorf("rate_limit.max_per_window must be > 0")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be > 0")
	}
	if c.Heartbeat.RateLimitWindow <= 0 {
		return fmt.Errorf("heartbeat.rate_limit_window must be > 0")
	}
	if c.Worker.Binary == "" {
		return fmt.Errorf("worker.binary must not be empty")
	}
	return c.Logging.Validate()
}

// IsModelAllowed reports whether model is in the allowlist (empty allowlist
// means "allow nothing" — this must be configured, spec.md §6).
func (c *Config) IsModelAllowed(model string) bool {
	for _, m := range c.Allowlist.Models {
		if m == model {
			return true
		}
	}
	return false
}

// IsAgentAllowed reports whether agent is in the allowlist.
func (c *Config) IsAgentAllowed(agent string) bool {
	for _, a := range c.Allowlist.Agents {
		if a == agent {
			return true
		}
	}
	return false
}

// SkipRuleEnabled reports whether rule is present in SkipRules (the
// bypass list loaded from the skip_rules config key or the
// TERMCOORD_SKIP_RULES environment variable; no TOKEN_GUARD_SKIP_RULES
// variable is read); unrecognized rules from either source are filtered out
// at load time, not here.
func (c *Config) SkipRuleEnabled(rule string) bool {
	for _, r := range c.SkipRules {
		if r == rule {
			return true
		}
	}
	return false
}

package config

import "testing"

func TestDefault_PassesValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() config failed Validate(): %v", err)
	}
}

func TestValidate_RejectsEmptyStateRoot(t *testing.T) {
	cfg := Default()
	cfg.StateRoot.Dir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty state_root.dir, got nil")
	}
}

func TestValidate_RejectsNonPositiveRateLimit(t *testing.T) {
	cfg := Default()
	cfg.RateLimit.MaxPerWindow = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-positive rate_limit.max_per_window, got nil")
	}
}

func TestValidate_RejectsEmptyWorkerBinary(t *testing.T) {
	cfg := Default()
	cfg.Worker.Binary = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty worker.binary, got nil")
	}
}

func TestIsModelAllowed(t *testing.T) {
	cfg := Default()
	if !cfg.IsModelAllowed("opus") {
		t.Error("opus should be allowed by default")
	}
	if cfg.IsModelAllowed("not-a-real-model") {
		t.Error("unknown model should not be allowed")
	}
}

func TestIsAgentAllowed(t *testing.T) {
	cfg := Default()
	if !cfg.IsAgentAllowed("general-purpose") {
		t.Error("general-purpose should be allowed by default")
	}
	if cfg.IsAgentAllowed("not-a-real-agent") {
		t.Error("unknown agent should not be allowed")
	}
}

func TestSkipRuleEnabled(t *testing.T) {
	cfg := Default()
	cfg.SkipRules = []string{"conflict_guard"}
	if !cfg.SkipRuleEnabled("conflict_guard") {
		t.Error("conflict_guard should be enabled")
	}
	if cfg.SkipRuleEnabled("rate_limit") {
		t.Error("rate_limit should not be enabled unless configured")
	}
}

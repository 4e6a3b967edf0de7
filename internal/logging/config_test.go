package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.Caller.Enabled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "valid default", cfg: DefaultConfig()},
		{name: "trace level", cfg: &Config{Level: "trace", Format: "console"}},
		{name: "invalid level", cfg: &Config{Level: "catastrophic", Format: "json"}, wantErr: "invalid log level"},
		{name: "invalid format", cfg: &Config{Level: "info", Format: "xml"}, wantErr: "invalid log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestZapLevel_RecognizesTrace(t *testing.T) {
	cfg := &Config{Level: "trace"}
	assert.Equal(t, TraceLevel, cfg.zapLevel())
}

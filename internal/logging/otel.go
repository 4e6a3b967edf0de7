package logging

import (
	"fmt"
	"os"

	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

// newCore builds the zapcore.Core for the logger: stderr always, plus an
// OTEL-bridged core when otelProvider is non-nil. termcoord is single-host
// with no collector configured by default (see DESIGN.md), so every
// constructor call in this repo passes a nil provider; the parameter exists
// so a future deployment can wire a real LoggerProvider without touching
// this package.
func newCore(cfg *Config, otelProvider log.LoggerProvider) (zapcore.Core, error) {
	encoder := newEncoder(cfg.Format)
	writer := zapcore.AddSync(os.Stderr)
	core := zapcore.NewCore(encoder, writer, cfg.zapLevel())

	if otelProvider == nil {
		return core, nil
	}

	otelCore, err := newOTELCore(otelProvider)
	if err != nil {
		return nil, fmt.Errorf("building otel log core: %w", err)
	}
	return zapcore.NewTee(core, otelCore), nil
}

package logging

import (
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

// newOTELCore bridges zap records into an OTEL LoggerProvider via the
// contrib otelzap bridge, the same dependency contextd uses for its own
// dual-output logger (internal/logging/otel.go in the teacher repo).
func newOTELCore(provider log.LoggerProvider) (zapcore.Core, error) {
	return otelzap.NewCore("termcoord", otelzap.WithLoggerProvider(provider)), nil
}

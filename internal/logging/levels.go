package logging

import "go.uber.org/zap/zapcore"

// TraceLevel is a custom level below Debug for wire-level tracing of the
// stdio transport and hook invocations. Value -2 (Debug is -1, Info is 0).
const TraceLevel = zapcore.Level(-2)

// LevelFromString parses level, additionally recognizing "trace".
func LevelFromString(level string) (zapcore.Level, error) {
	if level == "trace" {
		return TraceLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, err
	}
	return l, nil
}

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestContextFields_NilContextReturnsNil(t *testing.T) {
	assert.Nil(t, ContextFields(nil))
}

func TestContextFields_EmptyContextReturnsNil(t *testing.T) {
	assert.Nil(t, ContextFields(context.Background()))
}

func TestWithFields_AccumulatesAcrossCalls(t *testing.T) {
	ctx := WithFields(context.Background(), zap.String("a", "1"))
	ctx = WithFields(ctx, zap.String("b", "2"))

	fields := ContextFields(ctx)
	a := assert.New(t)
	a.Len(fields, 2)
	a.Equal("a", fields[0].Key)
	a.Equal("b", fields[1].Key)
}

func TestWithSession_SetsSessionField(t *testing.T) {
	ctx := WithSession(context.Background(), "sess-42")
	fields := ContextFields(ctx)

	assert.Len(t, fields, 1)
	assert.Equal(t, "session", fields[0].Key)
	assert.Equal(t, "sess-42", fields[0].String)
}

func TestLevelFromString(t *testing.T) {
	lvl, err := LevelFromString("trace")
	assert.NoError(t, err)
	assert.Equal(t, TraceLevel, lvl)

	lvl, err = LevelFromString("warn")
	assert.NoError(t, err)
	assert.Equal(t, "warn", lvl.String())

	_, err = LevelFromString("not-a-level")
	assert.Error(t, err)
}

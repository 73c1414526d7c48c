package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	l, done, err := Init("debug", true)
	require.NoError(t, err)
	defer done()

	assert.Same(t, l, zap.L())
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	_, _, err := Init("loud", false)
	assert.Error(t, err)
}

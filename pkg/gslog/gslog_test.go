// pkg/gslog/gslog_test.go

package gslog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsLogger(t *testing.T) {
	l, err := New("debug")
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Info("hello")
	assert.NoError(t, l.Sync())
}

func TestNewFallsBackOnBadLevel(t *testing.T) {
	l, err := New("not-a-level")
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Warn("discarded")
	assert.NoError(t, l.Sync())
}

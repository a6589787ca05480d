// pkg/gsrepo/state_test.go

package gsrepo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectStateNone(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, StateNone, detectState(dir))
}

func TestDetectStateRebaseMergeBeatsCherryPick(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "rebase-merge"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHERRY_PICK_HEAD"), []byte("x"), 0o644))

	require.Equal(t, StateRebaseMerge, detectState(dir))
}

func TestDetectStateMerge(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MERGE_HEAD"), []byte("x"), 0o644))
	require.Equal(t, StateMerge, detectState(dir))
}

func TestStateStringNames(t *testing.T) {
	require.Equal(t, "none", StateNone.String())
	require.Equal(t, "bisect", StateBisect.String())
}

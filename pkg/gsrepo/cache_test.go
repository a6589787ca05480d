// pkg/gsrepo/cache_test.go

package gsrepo

import (
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

func TestCacheGetReturnsSameRepoOnHit(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	c, err := NewCache(0)
	require.NoError(t, err)

	r1, err := c.Get(dir)
	require.NoError(t, err)
	r2, err := c.Get(dir)
	require.NoError(t, err)
	require.Same(t, r1, r2)
	require.Equal(t, 1, c.Len())
}

func TestCacheGetPropagatesOpenErrorWithoutCaching(t *testing.T) {
	dir := t.TempDir()

	c, err := NewCache(0)
	require.NoError(t, err)

	_, err = c.Get(dir)
	require.Error(t, err)
	require.Equal(t, 0, c.Len())
}

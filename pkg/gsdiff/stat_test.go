// pkg/gsdiff/stat_test.go

package gsdiff

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dritter/gitstatusd/pkg/gsindex"
)

// withStatOf copies into e the inode, device and ctime that fi carries on
// platforms whose fi.Sys() exposes them, as an index entry written for
// this very file would record them.
func withStatOf(fi os.FileInfo, e gsindex.Entry) gsindex.Entry {
	sys := reflect.Indirect(reflect.ValueOf(fi.Sys()))
	if sys.Kind() != reflect.Struct {
		return e
	}
	if f := sys.FieldByName("Ino"); f.IsValid() && f.CanUint() {
		e.Inode = uint32(f.Uint())
	}
	if f := sys.FieldByName("Dev"); f.IsValid() && f.CanUint() {
		e.Dev = uint32(f.Uint())
	}
	if f := sys.FieldByName("Ctim"); f.IsValid() && f.Kind() == reflect.Struct {
		if sec, nsec := f.FieldByName("Sec"), f.FieldByName("Nsec"); sec.CanInt() && nsec.CanInt() {
			e.CreatedAt = time.Unix(sec.Int(), nsec.Int())
		}
	}
	return e
}

func TestStatMatchesDetectsSizeChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	fi, err := os.Lstat(path)
	require.NoError(t, err)

	e := withStatOf(fi, gsindex.Entry{
		Size:       5,
		Mode:       0o100644,
		ModifiedAt: fi.ModTime(),
	})
	require.True(t, statMatches(fi, e))

	e.Size = 999
	require.False(t, statMatches(fi, e))
}

func TestStatMatchesDetectsModTimeChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	fi, err := os.Lstat(path)
	require.NoError(t, err)

	e := gsindex.Entry{
		Size:       5,
		Mode:       0o100644,
		ModifiedAt: fi.ModTime().Add(-time.Hour),
	}
	require.False(t, statMatches(fi, e))
}

func TestStatMatchesRejectsDirectories(t *testing.T) {
	dir := t.TempDir()
	fi, err := os.Lstat(dir)
	require.NoError(t, err)

	require.False(t, statMatches(fi, gsindex.Entry{}))
}

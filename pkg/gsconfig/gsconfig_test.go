// pkg/gsconfig/gsconfig_test.go

package gsconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideDefaults(t *testing.T) {
	cfg := Defaults()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs, &cfg)

	require.NoError(t, fs.Parse([]string{"--num-threads=7", "--dirty-max-index-size=100"}))
	assert.Equal(t, 7, cfg.NumThreads)
	assert.Equal(t, int64(100), cfg.DirtyMaxIndexSize)
}

func TestFlagsRejectUnknown(t *testing.T) {
	cfg := Defaults()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs, &cfg)
	assert.Error(t, fs.Parse([]string{"--not-a-real-option=1"}))
}

func TestLoadYAMLOverridesDefault(t *testing.T) {
	cfg := Defaults()
	path := filepath.Join(t.TempDir(), "gitstatusd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num-threads: 3\nlog-level: debug\n"), 0o644))

	require.NoError(t, Load(&cfg, "", path))
	assert.Equal(t, 3, cfg.NumThreads)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingYAMLIsNotAnError(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Load(&cfg, "", filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	cfg := Defaults()
	path := filepath.Join(t.TempDir(), "gitstatusd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num-threads: 3\n"), 0o644))
	t.Setenv("GITSTATUSD_NUM_THREADS", "9")
	require.NoError(t, Load(&cfg, "", path))
	assert.Equal(t, 9, cfg.NumThreads)
}

// pkg/gsconfig/gsconfig.go

// Package gsconfig is the recognized-options component (spec component
// G1). Precedence, highest to lowest: CLI flags > environment
// (GITSTATUSD_*, loaded through viper and an optional .env file) > an
// optional YAML options file > built-in defaults. Any option not in this
// list is rejected, the way the teacher's cobra root command rejects
// unknown flags outright rather than silently ignoring them.
package gsconfig

import (
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dritter/gitstatusd/pkg/gserr"
)

// DefaultDirtyMaxIndexSize is the "large sentinel" spec.md §6 calls for:
// large enough that no real working tree ever exceeds it by accident, so
// the worktree scan is skipped only when an operator opts in explicitly.
const DefaultDirtyMaxIndexSize = 1 << 30

// Config holds every recognized option from spec.md §6.
type Config struct {
	NumThreads        int    `yaml:"num-threads"`
	DirtyMaxIndexSize int64  `yaml:"dirty-max-index-size"`
	LockFD            int    `yaml:"lock-fd"`
	SigwinchPID       int    `yaml:"sigwinch-pid"`
	LogLevel          string `yaml:"log-level"`
	// QueueSize is not a spec.md option; it sizes pkg/gspool's bounded
	// queue and defaults from NumThreads, exposed for tuning under load.
	QueueSize int `yaml:"queue-size"`
}

// Defaults returns the built-in default configuration.
func Defaults() Config {
	n := runtime.NumCPU()
	return Config{
		NumThreads:        n,
		DirtyMaxIndexSize: DefaultDirtyMaxIndexSize,
		LockFD:            -1,
		SigwinchPID:       -1,
		LogLevel:          "info",
		QueueSize:         n * 2,
	}
}

// Flags registers every recognized flag on fs. Any flag the caller passes
// that is not registered here is rejected by pflag itself at Parse time.
func Flags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.NumThreads, "num-threads", cfg.NumThreads, "worker count; default = CPU count")
	fs.Int64Var(&cfg.DirtyMaxIndexSize, "dirty-max-index-size", cfg.DirtyMaxIndexSize, "indexes with more entries skip the worktree scan")
	fs.IntVar(&cfg.LockFD, "lock-fd", cfg.LockFD, "fd signaling parent liveness; EOF on read exits the process")
	fs.IntVar(&cfg.SigwinchPID, "sigwinch-pid", cfg.SigwinchPID, "pid to forward SIGWINCH to (cosmetic only)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn, or error")
	fs.IntVar(&cfg.QueueSize, "queue-size", cfg.QueueSize, "worker pool bounded-queue capacity")
}

// Load layers environment variables and an optional YAML file under
// whatever flags have already been parsed into cfg. envFile and
// yamlPath may be empty to skip that layer. Both sources are attempted
// even if one fails, so a bad .env file and a bad YAML file are both
// reported in a single error instead of requiring a fix-rerun-fix cycle.
func Load(cfg *Config, envFile, yamlPath string) error {
	var result *multierror.Error

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			result = multierror.Append(result, gserr.Wrap(gserr.KindParse, "reading env file "+envFile, err))
		}
	}

	if yamlPath != "" {
		if err := loadYAML(cfg, yamlPath); err != nil {
			result = multierror.Append(result, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("GITSTATUSD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	applyEnvOverride(v, "num-threads", &cfg.NumThreads)
	applyEnvOverride(v, "lock-fd", &cfg.LockFD)
	applyEnvOverride(v, "sigwinch-pid", &cfg.SigwinchPID)
	applyEnvOverrideString(v, "log-level", &cfg.LogLevel)
	applyEnvOverride(v, "queue-size", &cfg.QueueSize)
	if v.IsSet("dirty-max-index-size") {
		cfg.DirtyMaxIndexSize = v.GetInt64("dirty-max-index-size")
	}

	return result.ErrorOrNil()
}

func applyEnvOverride(v *viper.Viper, key string, dst *int) {
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func applyEnvOverrideString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return gserr.Wrap(gserr.KindIO, "reading config file "+path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return gserr.Wrap(gserr.KindParse, "parsing config file "+path, err)
	}
	return nil
}

// cmd/gitstatusd/internal/run/root.go

// Package run holds gitstatusd's cobra command and process wiring,
// separated from main.go the way the teacher splits cmd/root.go's
// Execute() out of its own package main.
package run

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dritter/gitstatusd/pkg/gsconfig"
	"github.com/dritter/gitstatusd/pkg/gsdaemon"
	"github.com/dritter/gitstatusd/pkg/gserr"
	"github.com/dritter/gitstatusd/pkg/gslog"
	"github.com/dritter/gitstatusd/pkg/gspool"
	"github.com/dritter/gitstatusd/pkg/gsrepo"
)

var (
	envFile  string
	yamlPath string
)

func newRootCmd() *cobra.Command {
	cfg := gsconfig.Defaults()

	cmd := &cobra.Command{
		Use:   "gitstatusd",
		Short: "Answer git working-tree status queries over stdin/stdout",
		Long: `gitstatusd is a long-lived daemon that reads status queries, one
working directory per line, and writes back branch, staged/unstaged/untracked,
ahead/behind, stash, and tag information with minimal per-query latency.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return gserr.Parsef("unrecognized arguments: %q", args)
			}
			return runDaemon(&cfg, cmd.Flags())
		},
		SilenceUsage: true,
	}

	fs := pflag.NewFlagSet("gitstatusd", pflag.ContinueOnError)
	gsconfig.Flags(fs, &cfg)
	cmd.Flags().AddFlagSet(fs)
	cmd.Flags().StringVar(&envFile, "env-file", "", "optional .env file for GITSTATUSD_* overrides")
	cmd.Flags().StringVar(&yamlPath, "config", "", "optional YAML options file")

	return cmd
}

// Execute builds and runs the root command, exiting with a non-zero
// status on failure, the same overall shape as the teacher's
// cmd.Execute(): log, run, flush, exit.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDaemon(cfg *gsconfig.Config, flags *pflag.FlagSet) error {
	// Flags are bound straight into cfg, so Load would overwrite them; set
	// the explicitly passed ones again afterwards so they keep precedence.
	explicit := map[string]string{}
	flags.Visit(func(f *pflag.Flag) { explicit[f.Name] = f.Value.String() })
	if err := gsconfig.Load(cfg, envFile, yamlPath); err != nil {
		return err
	}
	for name, val := range explicit {
		if err := flags.Set(name, val); err != nil {
			return err
		}
	}

	log, err := gslog.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		if syncErr := log.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", syncErr)
		}
	}()

	log = log.With(zap.String("instance_id", uuid.NewString()))
	log.Info("gitstatusd starting",
		zap.Int("num_threads", cfg.NumThreads),
		zap.Int64("dirty_max_index_size", cfg.DirtyMaxIndexSize),
	)

	cache, err := gsrepo.NewCache(0)
	if err != nil {
		return gserr.Wrap(gserr.KindLibrary, "constructing repository cache", err)
	}
	pool := gspool.New(cfg.NumThreads, cfg.QueueSize)
	defer pool.Close()

	stop := make(chan struct{})
	if cfg.LockFD >= 0 {
		go watchLockFD(cfg.LockFD, stop, log)
	}
	if cfg.SigwinchPID > 0 {
		go forwardSigwinch(cfg.SigwinchPID, stop)
	}
	defer close(stop)

	d := gsdaemon.New(cache, pool, log, *cfg)
	return d.Serve(os.Stdin, os.Stdout)
}

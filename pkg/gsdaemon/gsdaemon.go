// pkg/gsdaemon/gsdaemon.go

// Package gsdaemon is the request loop (spec component T3): reads
// requests off stdin one at a time, resolves each against the
// repository cache, and writes a response before moving to the next
// request. There is no concurrency across requests — the pool
// (pkg/gspool) only ever runs work belonging to the single in-flight
// request, matching gitstatus.cc's single-threaded ProcessRequest loop.
package gsdaemon

import (
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/dritter/gitstatusd/pkg/gsconfig"
	"github.com/dritter/gitstatusd/pkg/gsdiff"
	"github.com/dritter/gitstatusd/pkg/gserr"
	"github.com/dritter/gitstatusd/pkg/gslog"
	"github.com/dritter/gitstatusd/pkg/gspool"
	"github.com/dritter/gitstatusd/pkg/gsproto"
	"github.com/dritter/gitstatusd/pkg/gsrepo"
	"github.com/dritter/gitstatusd/pkg/gstimer"
)

// Daemon wires the repository cache, worker pool, and logger into the
// request/response loop.
type Daemon struct {
	cache *gsrepo.Cache
	pool  *gspool.Pool
	log   *gslog.Logger
	cfg   gsconfig.Config
}

// New constructs a Daemon. cfg is captured by value and read fresh on
// every request.
func New(cache *gsrepo.Cache, pool *gspool.Pool, log *gslog.Logger, cfg gsconfig.Config) *Daemon {
	return &Daemon{cache: cache, pool: pool, log: log, cfg: cfg}
}

// Serve reads requests from r and writes responses to w until r reaches
// EOF or produces a read error. A single malformed request is dropped
// (spec.md §7); it does not stop the loop.
func (d *Daemon) Serve(r io.Reader, w io.Writer) error {
	reader := gsproto.NewReader(r)
	writer := gsproto.NewWriter(w)

	for {
		req, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if kind, ok := gserr.KindOf(err); ok && kind == gserr.KindParse {
			d.log.Debug("dropping malformed request", zap.Error(err))
			continue
		}
		if err != nil {
			return err
		}

		resp := d.handle(req)
		if err := writer.Write(resp); err != nil {
			return err
		}
	}
}

func (d *Daemon) handle(req gsproto.Request) gsproto.Response {
	timer := gstimer.New(req.Diag)
	resp := gsproto.Response{ID: req.ID}

	var repo *gsrepo.Repo
	timer.Phase("open", func() {
		var err error
		repo, err = d.cache.Get(req.Dir)
		if err != nil {
			repo = nil
			if kind, ok := gserr.KindOf(err); !ok || kind != gserr.KindNotARepo {
				d.log.Warn("failed to open repository", zap.String("dir", req.Dir), zap.Error(err))
			}
		}
	})
	if repo == nil || repo.Workdir() == "" {
		timer.Report(d.log, "request")
		return resp
	}

	commit, headRef, err := repo.HeadCommit()
	if err != nil {
		d.log.Warn("failed to resolve HEAD", zap.String("dir", req.Dir), zap.Error(err))
		timer.Report(d.log, "request")
		return resp
	}

	var tagFuture *tagAwaiter
	if commit != nil {
		tagFuture = &tagAwaiter{f: repo.ResolveTag(commit.Hash)}
	}
	// Every path from here on must reach the Await below (invariant I4),
	// so the tag lookup's goroutine is never left running past this
	// request's lifetime.

	resp.IsRepo = true
	resp.Workdir = repo.Workdir()
	if commit != nil {
		resp.Commit = commit.Hash.String()
	}
	resp.LocalBranch = gsrepo.LocalBranchName(headRef)
	resp.RepoState = repo.State().Wire()
	resp.NumStashes = repo.StashCount()

	upstream, hasUpstream, err := repo.ResolveUpstream(resp.LocalBranch)
	if err != nil {
		d.log.Warn("failed to resolve upstream", zap.String("dir", req.Dir), zap.Error(err))
	}
	if hasUpstream {
		resp.UpstreamBranch = upstream.Remote + "/" + upstream.BranchName
		resp.RemoteURL = upstream.RemoteURL
	}

	var (
		diffRes       gsdiff.Result
		ahead, behind int
	)
	timer.Phase("diff", func() {
		var g errgroup.Group
		g.Go(func() error {
			res, err := repo.GetIndexStats(d.pool, d.cfg.NumThreads, d.cfg.DirtyMaxIndexSize, commit)
			diffRes = res
			return err
		})
		if hasUpstream {
			g.Go(func() error {
				upstreamRef, resolveErr := repo.Git().Reference(upstream.RefName, true)
				if resolveErr != nil {
					return nil // upstream branch never fetched locally: ahead/behind stay 0
				}
				var localHash plumbing.Hash
				if commit != nil {
					localHash = commit.Hash
				}
				a, b, err := gsrepo.AheadBehind(repo.Git().Storer, localHash, upstreamRef.Hash())
				ahead, behind = a, b
				return err
			})
		}
		if err := g.Wait(); err != nil {
			d.log.Warn("diff computation failed", zap.String("dir", req.Dir), zap.Error(err))
		}
	})

	resp.HasStaged = diffRes.Staged == gsdiff.True
	resp.HasUnstaged = diffRes.Unstaged.Int()
	resp.HasUntracked = diffRes.Untracked.Int()
	resp.Ahead = ahead
	resp.Behind = behind

	if tagFuture != nil {
		resp.Tag = tagFuture.await(d.log, req.Dir)
	}

	timer.Report(d.log, "request")
	return resp
}

// tagAwaiter defers the tag future's Await to a single call site so
// every return path through handle awaits it exactly once.
type tagAwaiter struct {
	f interface {
		Await() (string, error)
	}
}

func (t *tagAwaiter) await(log *gslog.Logger, dir string) string {
	tag, err := t.f.Await()
	if err != nil {
		log.Warn("tag resolution failed", zap.String("dir", dir), zap.Error(err))
	}
	return tag
}

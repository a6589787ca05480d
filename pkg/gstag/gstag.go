// pkg/gstag/gstag.go

// Package gstag is the background tag-name resolver (spec component M3):
// for a given commit it finds the lexicographically greatest tag name
// that points at it, running on its own goroutine so the diff engine
// (M4) never blocks waiting on ref enumeration. Every resolution started
// for a request must be awaited before the request completes (invariant
// I4), even if the diff engine already has everything else it needs.
package gstag

import (
	"sync"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Future is a handle to an in-flight or completed tag resolution.
type Future struct {
	done   chan struct{}
	result string
	err    error
}

// Await blocks until the resolution finishes and returns the tag name
// (empty if no tag points at the commit) or the error that aborted it.
func (f *Future) Await() (string, error) {
	<-f.done
	return f.result, f.err
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) complete(result string, err error) {
	f.result = result
	f.err = err
	close(f.done)
}

type cacheKey struct {
	refsGen int64
	oid     plumbing.Hash
}

// Resolver caches resolutions by (refs-generation, commit), so a repeat
// query for the same commit between ref changes never re-enumerates tags.
type Resolver struct {
	repo *git.Repository

	mu      sync.Mutex
	gen     int64
	futures map[cacheKey]*Future
}

// NewResolver returns a resolver bound to repo. It does no I/O itself;
// enumeration only happens once Resolve is called.
func NewResolver(repo *git.Repository) *Resolver {
	return &Resolver{
		repo:    repo,
		futures: make(map[cacheKey]*Future),
	}
}

// Resolve starts (or reuses) a background resolution of the tag pointing
// at oid, keyed by refsGen so a ref change invalidates every prior
// resolution. Callers must Await the returned Future before the request
// they belong to finishes (invariant I4).
func (r *Resolver) Resolve(oid plumbing.Hash, refsGen int64) *Future {
	r.mu.Lock()
	if refsGen != r.gen {
		r.futures = make(map[cacheKey]*Future)
		r.gen = refsGen
	}
	key := cacheKey{refsGen: refsGen, oid: oid}
	if f, ok := r.futures[key]; ok {
		r.mu.Unlock()
		return f
	}
	f := newFuture()
	r.futures[key] = f
	r.mu.Unlock()

	go func() {
		name, err := resolveTagName(r.repo, oid)
		f.complete(name, err)
	}()
	return f
}

// resolveTagName enumerates refs/tags/*, peels annotated tag objects down
// to the commit they ultimately point at, and returns the
// lexicographically greatest tag name among those that resolve to oid.
// Ties (two tags on the same commit) are broken in favor of the greater
// name, matching gitstatus.cc's "pick one deterministically" behavior
// without depending on ref iteration order.
func resolveTagName(repo *git.Repository, oid plumbing.Hash) (string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return "", err
	}
	defer iter.Close()

	best := ""
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target, ok := peelToCommit(repo, ref.Hash())
		if !ok || target != oid {
			return nil
		}
		name := ref.Name().Short()
		if name > best {
			best = name
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return best, nil
}

// peelToCommit follows a tag object chain (a tag may point at another
// tag) down to the commit it ultimately targets. Lightweight tags
// already name a commit directly, so those are returned unchanged.
func peelToCommit(repo *git.Repository, hash plumbing.Hash) (plumbing.Hash, bool) {
	for i := 0; i < maxTagPeelDepth; i++ {
		if _, err := object.GetCommit(repo.Storer, hash); err == nil {
			return hash, true
		}
		tagObj, err := object.GetTag(repo.Storer, hash)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		hash = tagObj.Target
	}
	return plumbing.ZeroHash, false
}

// maxTagPeelDepth bounds tag-of-tag chains; real repositories never
// nest more than one or two deep, so this is purely a safety backstop
// against a pathological or corrupt object graph.
const maxTagPeelDepth = 16

// pkg/gsrepo/cache.go

package gsrepo

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/dritter/gitstatusd/pkg/gserr"
)

// DefaultCacheSize bounds the number of distinct repositories kept open
// at once (spec.md §4.M5's Open Question: unbounded growth would leak a
// native handle per distinct directory a long-lived daemon is ever asked
// about). 4096 comfortably covers a single interactive shell session's
// worth of repositories with room to spare.
const DefaultCacheSize = 4096

// Cache maps a working directory to its opened Repo, evicting the least
// recently used entry once it grows past its bound. Lookups always go
// through the same Repo for a given directory, satisfying the
// exactly-one-owner-per-native-handle invariant spec.md §3 requires.
type Cache struct {
	repos *lru.Cache
}

// NewCache constructs a bounded repository cache. size <= 0 falls back
// to DefaultCacheSize.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	repos, err := lru.New(size)
	if err != nil {
		return nil, gserr.Wrap(gserr.KindLibrary, "constructing repo cache", err)
	}
	return &Cache{repos: repos}, nil
}

// Get returns the cached Repo for dir, opening and inserting one on a
// miss. Open failures (dir is not a git repository, or some I/O error)
// are never cached, since the same directory may be a valid repository
// on the next request (spec.md §4.M5).
func (c *Cache) Get(dir string) (*Repo, error) {
	if v, ok := c.repos.Get(dir); ok {
		r := v.(*Repo)
		r.touch()
		return r, nil
	}

	r, err := Open(dir)
	if err != nil {
		return nil, err
	}
	c.repos.Add(dir, r)
	return r, nil
}

// Len reports how many repositories are currently cached.
func (c *Cache) Len() int { return c.repos.Len() }

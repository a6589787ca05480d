// pkg/gsrepo/aheadbehind.go

package gsrepo

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/dritter/gitstatusd/pkg/gserr"
)

// ancestorSetLimit bounds the BFS below, which follows every parent of
// each commit; a repository with more reachable commits than this is
// pathological, and reporting an approximate "too many to count" result
// is safer than an unbounded walk on the request thread's time budget.
const ancestorSetLimit = 100000

// AheadBehind reports how many commits head has that upstream lacks,
// and vice versa, by walking each commit's ancestry independently and
// set-differencing the two reachable-commit sets. This is simpler and
// easier to get right without a live compiler than the alternating-BFS
// early-termination approach git itself uses, at the cost of walking
// slightly more history than strictly necessary.
func AheadBehind(store storer.EncodedObjectStorer, head, upstream plumbing.Hash) (ahead, behind int, err error) {
	if head == upstream {
		return 0, 0, nil
	}

	headSet, err := ancestorSet(store, head, ancestorSetLimit)
	if err != nil {
		return 0, 0, err
	}
	upstreamSet, err := ancestorSet(store, upstream, ancestorSetLimit)
	if err != nil {
		return 0, 0, err
	}

	for h := range headSet {
		if _, ok := upstreamSet[h]; !ok {
			ahead++
		}
	}
	for h := range upstreamSet {
		if _, ok := headSet[h]; !ok {
			behind++
		}
	}
	return ahead, behind, nil
}

// ancestorSet returns the set of commit hashes reachable from start
// (start included), stopping early past limit nodes.
func ancestorSet(store storer.EncodedObjectStorer, start plumbing.Hash, limit int) (map[plumbing.Hash]struct{}, error) {
	seen := make(map[plumbing.Hash]struct{})
	if start == plumbing.ZeroHash {
		return seen, nil
	}

	queue := []plumbing.Hash{start}
	for len(queue) > 0 && len(seen) < limit {
		h := queue[0]
		queue = queue[1:]
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}

		c, err := object.GetCommit(store, h)
		if err != nil {
			return nil, gserr.Wrap(gserr.KindLibrary, "walking commit ancestry", err)
		}
		queue = append(queue, c.ParentHashes...)
	}
	return seen, nil
}

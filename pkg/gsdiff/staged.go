// pkg/gsdiff/staged.go

package gsdiff

import (
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dritter/gitstatusd/pkg/gserr"
	"github.com/dritter/gitstatusd/pkg/gsindex"
)

// Staged walks HEAD's tree and the sorted index side by side (spec.md
// §4.M4). Any differing path, differing OID or mode, or any
// conflicted/intent-to-add index entry sets staged true; the scan
// short-circuits on the first such finding. tree is nil for an unborn
// branch, in which case every tracked entry is by definition staged.
func Staged(tree *object.Tree, entries []gsindex.Entry) (bool, error) {
	if tree == nil {
		return len(entries) > 0, nil
	}

	seenInTree := make(map[string]struct {
		hash string
		mode uint32
	}, len(entries))

	iter := tree.Files()
	defer iter.Close()
	if err := iter.ForEach(func(f *object.File) error {
		seenInTree[f.Name] = struct {
			hash string
			mode uint32
		}{hash: f.Hash.String(), mode: uint32(f.Mode)}
		return nil
	}); err != nil {
		return false, gserr.Wrap(gserr.KindLibrary, "walking HEAD tree", err)
	}

	matched := 0
	for _, e := range entries {
		if e.Conflicted || e.IntentToAdd {
			return true, nil
		}
		tf, ok := seenInTree[e.Path]
		if !ok {
			return true, nil // staged addition
		}
		matched++
		if tf.hash != e.OID.String() || tf.mode != e.Mode {
			return true, nil // staged modification (content or mode)
		}
	}
	if matched != len(seenInTree) {
		return true, nil // staged deletion: a tree path has no index entry
	}
	return false, nil
}

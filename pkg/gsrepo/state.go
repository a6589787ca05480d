// pkg/gsrepo/state.go

package gsrepo

import (
	"os"
	"path/filepath"
)

// State is the in-progress operation a repository is in, detected the
// same way `git status` does: by the presence of sentinel files under
// .git, not by anything go-git's object model exposes (spec.md §4.M1).
type State int

const (
	StateNone State = iota
	StateMerge
	StateRebaseMerge
	StateRebaseApply
	StateCherryPick
	StateBisect
	StateRevert
)

func (s State) String() string {
	switch s {
	case StateMerge:
		return "merge"
	case StateRebaseMerge:
		return "rebase-merge"
	case StateRebaseApply:
		return "rebase-apply"
	case StateCherryPick:
		return "cherry-pick"
	case StateBisect:
		return "bisect"
	case StateRevert:
		return "revert"
	default:
		return "none"
	}
}

// Wire renders State using the response field 8 vocabulary, which
// differs slightly from String's names (empty instead of "none",
// "rebase" instead of "rebase-merge", "apply-mailbox" instead of
// "rebase-apply", to match `git`'s own mailbox-vs-merge rebase
// distinction as reported by `git status --porcelain`).
func (s State) Wire() string {
	switch s {
	case StateMerge:
		return "merge"
	case StateRebaseMerge:
		return "rebase"
	case StateRebaseApply:
		return "apply-mailbox"
	case StateCherryPick:
		return "cherry-pick"
	case StateBisect:
		return "bisect"
	case StateRevert:
		return "revert"
	default:
		return ""
	}
}

// detectState checks gitDir for the sentinel files git itself leaves
// behind while a merge, rebase, cherry-pick, bisect or revert is
// stopped partway through. Precedence follows git's own wt-status.c:
// an in-progress rebase takes priority over a stale CHERRY_PICK_HEAD
// left by a rebase that replays commits with `cherry-pick`.
func detectState(gitDir string) State {
	if gitDir == "" {
		return StateNone
	}
	exists := func(name string) bool {
		_, err := os.Stat(filepath.Join(gitDir, name))
		return err == nil
	}

	if exists("rebase-merge") {
		return StateRebaseMerge
	}
	if exists("rebase-apply") {
		return StateRebaseApply
	}
	if exists("MERGE_HEAD") {
		return StateMerge
	}
	if exists("CHERRY_PICK_HEAD") {
		return StateCherryPick
	}
	if exists("BISECT_LOG") {
		return StateBisect
	}
	if exists("REVERT_HEAD") {
		return StateRevert
	}
	return StateNone
}

// State reports the repository's current in-progress operation, if any.
func (r *Repo) State() State {
	return detectState(r.gitDir())
}

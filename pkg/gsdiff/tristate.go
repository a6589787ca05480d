// pkg/gsdiff/tristate.go

// Package gsdiff is the diff engine (spec component M4): a parallel
// traversal that decides whether the index has staged differences against
// HEAD, whether the working tree has unstaged differences against the
// index, and whether there are untracked files, with early exit as soon
// as all three are known.
package gsdiff

// Tri is a tri-state boolean: known-false, known-true, or unknown (the
// budget-exceeded / io-failure downgrade spec.md §6 field 10/11 encode as
// -1/0/1).
type Tri int8

const (
	Unknown Tri = -1
	False   Tri = 0
	True    Tri = 1
)

// Int renders Tri in the wire encoding spec.md §6 specifies.
func (t Tri) Int() int { return int(t) }

func triFromBool(b bool) Tri {
	if b {
		return True
	}
	return False
}

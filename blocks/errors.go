package blocks

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoRoot         = errors.New("blocks: no root record found")
	ErrMultipleRoots  = errors.New("blocks: multiple root records found")
	ErrDanglingParent = errors.New("blocks: parent record missing from set")
	ErrCycle          = errors.New("blocks: parent chain contains a cycle")
	ErrChildMismatch  = errors.New("blocks: children array disagrees with parent links")
	ErrEmptyRecordSet = errors.New("blocks: record set is empty")
	ErrMissingID      = errors.New("blocks: record is missing an identifier")
)

// ProblemKind classifies a single structural defect found during assembly.
type ProblemKind string

const (
	ProblemNoRoot         ProblemKind = "no_root"
	ProblemMultipleRoots  ProblemKind = "multiple_roots"
	ProblemDanglingParent ProblemKind = "dangling_parent"
	ProblemCycle          ProblemKind = "cycle"
	ProblemChildMismatch  ProblemKind = "child_mismatch"
	ProblemMissingID      ProblemKind = "missing_id"
)

// Problem describes one structural defect. BlockID is empty for set-wide
// problems such as a missing root.
type Problem struct {
	Kind    ProblemKind
	BlockID string
	Detail  string
}

func (p Problem) String() string {
	var b strings.Builder
	b.WriteString(string(p.Kind))
	if p.BlockID != "" {
		fmt.Fprintf(&b, " block=%s", p.BlockID)
	}
	if p.Detail != "" {
		fmt.Fprintf(&b, " (%s)", p.Detail)
	}
	return b.String()
}

func (p Problem) sentinel() error {
	switch p.Kind {
	case ProblemNoRoot:
		return ErrNoRoot
	case ProblemMultipleRoots:
		return ErrMultipleRoots
	case ProblemDanglingParent:
		return ErrDanglingParent
	case ProblemCycle:
		return ErrCycle
	case ProblemChildMismatch:
		return ErrChildMismatch
	case ProblemMissingID:
		return ErrMissingID
	}
	return nil
}

// StructuralError aggregates every structural defect found while assembling a
// record set. Assembly is all-or-nothing: when this error is returned no tree
// exists and callers receive the full problem list, not just the first hit.
type StructuralError struct {
	Problems []Problem
}

func (e *StructuralError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "blocks: structural error"
	}
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("blocks: structural errors [%s]", strings.Join(parts, "; "))
}

// Unwrap exposes one sentinel per distinct problem kind so callers can test
// with errors.Is against ErrNoRoot, ErrDanglingParent, and friends.
func (e *StructuralError) Unwrap() []error {
	if e == nil {
		return nil
	}
	seen := map[ProblemKind]struct{}{}
	out := make([]error, 0, len(e.Problems))
	for _, p := range e.Problems {
		if _, ok := seen[p.Kind]; ok {
			continue
		}
		seen[p.Kind] = struct{}{}
		if s := p.sentinel(); s != nil {
			out = append(out, s)
		}
	}
	return out
}

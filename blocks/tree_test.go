package blocks

import (
	"errors"
	"testing"
)

func record(id, parent string, children ...string) BlockRecord {
	return BlockRecord{
		ID:       id,
		Type:     TypeText,
		ParentID: parent,
		Children: children,
		Text:     &TextPayload{},
	}
}

func TestAssembleLinksTree(t *testing.T) {
	tree, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"a", "b"}},
		record("b", "root"),
		record("a", "root"),
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if tree.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", tree.Len())
	}
	if tree.Root().ID != "root" {
		t.Fatalf("expected root record, got %s", tree.Root().ID)
	}
	if _, ok := tree.Get("a"); !ok {
		t.Fatal("expected record a to resolve")
	}
}

func TestAssembleDeduplicatesFirstOccurrenceWins(t *testing.T) {
	first := record("a", "root")
	first.Text = &TextPayload{Elements: []InlineRun{{TextRun: &TextRun{Content: "first"}}}}
	second := record("a", "root")
	second.Text = &TextPayload{Elements: []InlineRun{{TextRun: &TextRun{Content: "second"}}}}

	tree, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"a"}},
		first,
		second,
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if tree.Len() != 2 {
		t.Fatalf("expected duplicate to be dropped, got %d records", tree.Len())
	}
	rec, _ := tree.Get("a")
	if got := rec.Text.Elements[0].TextRun.Content; got != "first" {
		t.Fatalf("expected first occurrence to win, got %q", got)
	}
}

func TestAssembleEmptySet(t *testing.T) {
	_, err := Assemble(nil)
	if !errors.Is(err, ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot for empty set, got %v", err)
	}
}

func TestAssembleNoRoot(t *testing.T) {
	_, err := Assemble([]BlockRecord{
		record("a", "b"),
		record("b", "a"),
	})
	if !errors.Is(err, ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot, got %v", err)
	}
	// The same set is also cyclic; both defects must be reported.
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle alongside ErrNoRoot, got %v", err)
	}
}

func TestAssembleMultipleRoots(t *testing.T) {
	_, err := Assemble([]BlockRecord{
		{ID: "r1", Type: TypePage},
		{ID: "r2", Type: TypePage},
	})
	if !errors.Is(err, ErrMultipleRoots) {
		t.Fatalf("expected ErrMultipleRoots, got %v", err)
	}
}

func TestAssembleDanglingParent(t *testing.T) {
	_, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"a"}},
		record("a", "root"),
		record("b", "nowhere"),
	})
	if !errors.Is(err, ErrDanglingParent) {
		t.Fatalf("expected ErrDanglingParent, got %v", err)
	}
}

func TestAssembleCollectsAllProblems(t *testing.T) {
	_, err := Assemble([]BlockRecord{
		{ID: "r1", Type: TypePage},
		{ID: "r2", Type: TypePage},
		record("orphan", "nowhere"),
	})
	if err == nil {
		t.Fatal("expected structural error")
	}

	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected *StructuralError, got %T", err)
	}

	kinds := map[ProblemKind]int{}
	for _, p := range structural.Problems {
		kinds[p.Kind]++
	}
	if kinds[ProblemMultipleRoots] != 2 {
		t.Fatalf("expected both roots reported, got %v", structural.Problems)
	}
	if kinds[ProblemDanglingParent] != 1 {
		t.Fatalf("expected dangling parent reported, got %v", structural.Problems)
	}
}

func TestAssembleMissingID(t *testing.T) {
	_, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage},
		{Type: TypeText, ParentID: "root"},
	})
	if !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestAssembleSelfParentCycle(t *testing.T) {
	_, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"a"}},
		record("a", "a"),
	})
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestAssembleRejectsSelfListingChildren(t *testing.T) {
	loop := record("a", "root")
	loop.Children = []string{"a"}

	_, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"a"}},
		loop,
	})
	if !errors.Is(err, ErrChildMismatch) {
		t.Fatalf("expected ErrChildMismatch, got %v", err)
	}
}

func TestAssembleRejectsChildListedUnderTwoParents(t *testing.T) {
	_, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"a", "b"}},
		record("a", "root", "shared"),
		record("b", "root", "shared"),
		record("shared", "a"),
	})
	if !errors.Is(err, ErrChildMismatch) {
		t.Fatalf("expected ErrChildMismatch, got %v", err)
	}
}

func TestAssembleRejectsDuplicateChildEntries(t *testing.T) {
	_, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"a", "a"}},
		record("a", "root"),
	})
	if !errors.Is(err, ErrChildMismatch) {
		t.Fatalf("expected ErrChildMismatch, got %v", err)
	}
}

func TestAssembleToleratesAbsentChildIDs(t *testing.T) {
	tree, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"a", "unfetched"}},
		record("a", "root"),
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if tree.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", tree.Len())
	}
}

func TestIDsReturnsCopyInFirstOccurrenceOrder(t *testing.T) {
	tree, err := Assemble([]BlockRecord{
		{ID: "root", Type: TypePage, Children: []string{"b", "a"}},
		record("b", "root"),
		record("a", "root"),
	})
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	ids := tree.IDs()
	want := []string{"root", "b", "a"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}

	ids[0] = "mutated"
	if tree.IDs()[0] != "root" {
		t.Fatal("expected IDs to return a defensive copy")
	}
}

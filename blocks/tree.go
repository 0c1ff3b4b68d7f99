package blocks

// DocumentTree is an immutable arena of block records linked by identifier.
// Exactly one record has an empty parent id (the root); every other record's
// parent resolves to a record in the set. Children arrays carry the
// authoritative document order.
type DocumentTree struct {
	records map[string]*BlockRecord
	order   []string
	rootID  string
}

// Assemble links a flat, unordered, possibly duplicated record collection
// into a single rooted tree.
//
// Duplicate identifiers (overlapping paged fetches) are resolved
// first-occurrence-wins; later duplicates are dropped silently. Assembly
// fails with a *StructuralError carrying every defect found when the set has
// zero or multiple roots, when a non-root record's parent is absent, or when
// a parent chain revisits a node.
func Assemble(records []BlockRecord) (*DocumentTree, error) {
	if len(records) == 0 {
		return nil, &StructuralError{Problems: []Problem{{Kind: ProblemNoRoot, Detail: ErrEmptyRecordSet.Error()}}}
	}

	var problems []Problem

	index := make(map[string]*BlockRecord, len(records))
	order := make([]string, 0, len(records))
	for i := range records {
		rec := records[i]
		if rec.ID == "" {
			problems = append(problems, Problem{Kind: ProblemMissingID, Detail: "record without block_id"})
			continue
		}
		if _, ok := index[rec.ID]; ok {
			// First occurrence wins; overlapping pages re-deliver records.
			continue
		}
		index[rec.ID] = &rec
		order = append(order, rec.ID)
	}

	var roots []string
	for _, id := range order {
		rec := index[id]
		if rec.ParentID == "" {
			roots = append(roots, id)
			continue
		}
		if _, ok := index[rec.ParentID]; !ok {
			problems = append(problems, Problem{
				Kind:    ProblemDanglingParent,
				BlockID: id,
				Detail:  "parent " + rec.ParentID + " not in record set",
			})
		}
	}

	switch {
	case len(roots) == 0:
		problems = append(problems, Problem{Kind: ProblemNoRoot})
	case len(roots) > 1:
		for _, id := range roots {
			problems = append(problems, Problem{Kind: ProblemMultipleRoots, BlockID: id})
		}
	}

	problems = append(problems, verifyChildren(index, order)...)
	problems = append(problems, findCycles(index, order)...)

	if len(problems) > 0 {
		return nil, &StructuralError{Problems: problems}
	}

	return &DocumentTree{
		records: index,
		order:   order,
		rootID:  roots[0],
	}, nil
}

// verifyChildren checks every children array against the parent links.
// Each listed child must name the lister as its parent and may appear only
// once; traversal follows children arrays, so an inconsistent entry would
// render a node twice or recurse forever. Child ids absent from the set are
// tolerated and skipped at traversal time.
func verifyChildren(index map[string]*BlockRecord, order []string) []Problem {
	var problems []Problem

	for _, id := range order {
		rec := index[id]
		if len(rec.Children) == 0 {
			continue
		}
		seen := make(map[string]struct{}, len(rec.Children))
		for _, childID := range rec.Children {
			if childID == id {
				problems = append(problems, Problem{
					Kind:    ProblemChildMismatch,
					BlockID: id,
					Detail:  "children array lists the record itself",
				})
				continue
			}
			if _, dup := seen[childID]; dup {
				problems = append(problems, Problem{
					Kind:    ProblemChildMismatch,
					BlockID: id,
					Detail:  "child " + childID + " listed more than once",
				})
				continue
			}
			seen[childID] = struct{}{}

			child, ok := index[childID]
			if !ok {
				continue
			}
			if child.ParentID != id {
				problems = append(problems, Problem{
					Kind:    ProblemChildMismatch,
					BlockID: id,
					Detail:  "child " + childID + " names parent " + child.ParentID,
				})
			}
		}
	}

	return problems
}

// findCycles walks each record's parent chain. A chain that revisits a node
// already seen in the same walk is cyclic. Nodes proven to terminate are
// cached so the pass stays linear over the set.
func findCycles(index map[string]*BlockRecord, order []string) []Problem {
	var problems []Problem
	terminates := make(map[string]bool, len(index))

	for _, start := range order {
		if terminates[start] {
			continue
		}
		chain := []string{}
		inChain := map[string]struct{}{}
		id := start
		cyclic := false
		for {
			if terminates[id] {
				break
			}
			if _, ok := inChain[id]; ok {
				problems = append(problems, Problem{
					Kind:    ProblemCycle,
					BlockID: id,
					Detail:  "parent chain revisits node",
				})
				cyclic = true
				break
			}
			inChain[id] = struct{}{}
			chain = append(chain, id)
			rec, ok := index[id]
			if !ok || rec.ParentID == "" {
				break
			}
			next, ok := index[rec.ParentID]
			if !ok {
				break
			}
			id = next.ID
		}
		if !cyclic {
			for _, seen := range chain {
				terminates[seen] = true
			}
		}
	}

	return problems
}

// Root returns the single record with an empty parent id.
func (t *DocumentTree) Root() *BlockRecord {
	return t.records[t.rootID]
}

// Get resolves a record by identifier.
func (t *DocumentTree) Get(id string) (*BlockRecord, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// Len reports the number of records in the tree after deduplication.
func (t *DocumentTree) Len() int {
	return len(t.records)
}

// IDs returns record identifiers in first-occurrence order. The slice is a
// copy; the tree stays immutable.
func (t *DocumentTree) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

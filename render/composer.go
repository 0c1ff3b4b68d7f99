package render

import (
	"strings"

	"github.com/goliatone/go-docmark/blocks"
)

// composer walks an assembled tree in strict pre-order, following each
// node's children array, and joins rendered chunks with the blank-line
// adjacency rules. One composer serves exactly one conversion call; it owns
// the traversal-local numbering and warning state.
type composer struct {
	tree      *blocks.DocumentTree
	opts      Options
	numbering *listNumbering
	warnings  *warningList
}

func newComposer(tree *blocks.DocumentTree, opts Options) *composer {
	return &composer{
		tree:      tree,
		opts:      opts.normalized(),
		numbering: newListNumbering(),
		warnings:  &warningList{},
	}
}

// chunk is one rendered sibling: its text plus the block type that produced
// it, which drives the separation decision against its neighbours.
type chunk struct {
	text string
	kind blocks.BlockType
}

// compose renders the whole tree. The result has no leading blank line and
// exactly one trailing newline; an empty document renders to the empty
// string.
func (c *composer) compose() (markdown, title string) {
	root := c.tree.Root()
	if body := root.TextBody(); body != nil {
		title = strings.TrimSpace(plainText(body.Elements))
	}

	body := joinChunks(c.childChunks(root))
	if body == "" {
		return "", title
	}
	return strings.TrimRight(body, "\n") + "\n", title
}

// childChunks renders a parent's children in children-array order. The
// ordered-list counter scope for this parent is released when its children
// are exhausted, so sibling lists elsewhere restart numbering.
func (c *composer) childChunks(parent *blocks.BlockRecord) []chunk {
	defer c.numbering.release(parent.ID)

	chunks := make([]chunk, 0, len(parent.Children))
	for _, childID := range parent.Children {
		child, ok := c.tree.Get(childID)
		if !ok {
			continue
		}
		text, ok := c.renderNode(child)
		if !ok || text == "" {
			continue
		}
		chunks = append(chunks, chunk{text: text, kind: child.Type})
	}
	return chunks
}

// joinChunks concatenates sibling chunks, inserting a blank line wherever
// the adjacency table demands one.
func joinChunks(chunks []chunk) string {
	if len(chunks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, ch := range chunks {
		if i > 0 {
			if needsBlank(chunks[i-1].kind, ch.kind) {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString(ch.text)
	}
	return b.String()
}

// paragraphKinds lists the block types that demand a blank line against any
// neighbour. Consecutive list items are the exception handled in needsBlank.
var paragraphKinds = map[blocks.BlockType]struct{}{
	blocks.TypeText:           {},
	blocks.TypeHeading1:       {},
	blocks.TypeHeading2:       {},
	blocks.TypeHeading3:       {},
	blocks.TypeHeading4:       {},
	blocks.TypeHeading5:       {},
	blocks.TypeHeading6:       {},
	blocks.TypeHeading7:       {},
	blocks.TypeHeading8:       {},
	blocks.TypeHeading9:       {},
	blocks.TypeCode:           {},
	blocks.TypeQuote:          {},
	blocks.TypeQuoteContainer: {},
	blocks.TypeCallout:        {},
	blocks.TypeEquation:       {},
	blocks.TypeTable:          {},
	blocks.TypeImage:          {},
	blocks.TypeDivider:        {},
}

// needsBlank decides the separation between two adjacent siblings. Two list
// items stay tight regardless of marker kind; otherwise a blank line is
// required when either side is a paragraph-level block.
func needsBlank(prev, next blocks.BlockType) bool {
	if prev.IsListItem() && next.IsListItem() {
		return false
	}
	if _, ok := paragraphKinds[prev]; ok {
		return true
	}
	_, ok := paragraphKinds[next]
	return ok
}

// indentLines prefixes every non-empty line with the given indent. Blank
// separator lines stay empty so no trailing whitespace leaks into output.
func indentLines(text, indent string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// prefixLines marks every line with a blockquote prefix; empty lines become
// a bare marker so the quote stays contiguous.
func prefixLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = strings.TrimRight(prefix, " ")
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
